package handler

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/domain/repository"
	"agricsmart/internal/usecase"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/response"
	"agricsmart/pkg/utils"
)

type CourseHandler struct {
	courseUseCase *usecase.CourseUseCase
}

func NewCourseHandler(courseUseCase *usecase.CourseUseCase) *CourseHandler {
	return &CourseHandler{
		courseUseCase: courseUseCase,
	}
}

type lessonRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url" validate:"omitempty,url"`
	Duration int    `json:"duration" validate:"gte=0"`
}

type moduleRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Lessons     []lessonRequest `json:"lessons" validate:"dive"`
}

type createCourseRequest struct {
	Title       string          `json:"title" validate:"required,min=3"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	Thumbnail   string          `json:"thumbnail" validate:"omitempty,url"`
	Level       string          `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Modules     []moduleRequest `json:"modules" validate:"dive"`
}

func toModuleInputs(modules []moduleRequest) []usecase.ModuleInput {
	inputs := make([]usecase.ModuleInput, 0, len(modules))
	for _, m := range modules {
		lessons := make([]usecase.LessonInput, 0, len(m.Lessons))
		for _, l := range m.Lessons {
			lessons = append(lessons, usecase.LessonInput{
				Title:    l.Title,
				Content:  l.Content,
				VideoURL: l.VideoURL,
				Duration: l.Duration,
			})
		}
		inputs = append(inputs, usecase.ModuleInput{
			Title:       m.Title,
			Description: m.Description,
			Lessons:     lessons,
		})
	}
	return inputs
}

func (h *CourseHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	course, err := h.courseUseCase.CreateCourse(c.Request().Context(), uid, usecase.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Thumbnail:   req.Thumbnail,
		Level:       req.Level,
		Modules:     toModuleInputs(req.Modules),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, course)
}

type updateCourseRequest struct {
	Title       string          `json:"title" validate:"omitempty,min=3"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	Thumbnail   string          `json:"thumbnail" validate:"omitempty,url"`
	Level       string          `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Modules     []moduleRequest `json:"modules" validate:"omitempty,dive"`
	IsPublished *bool           `json:"is_published"`
}

func (h *CourseHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.UpdateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Thumbnail:   req.Thumbnail,
		Level:       req.Level,
		IsPublished: req.IsPublished,
	}
	if req.Modules != nil {
		input.Modules = toModuleInputs(req.Modules)
	}

	course, err := h.courseUseCase.UpdateCourse(c.Request().Context(), c.Param("id"), uid, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, course)
}

func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courseUseCase.GetCourse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, course)
}

func (h *CourseHandler) Search(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	filter := repository.CourseSearchFilter{
		Query:      c.QueryParam("q"),
		CategoryID: c.QueryParam("category_id"),
		Level:      c.QueryParam("level"),
		Sort:       c.QueryParam("sort"),
	}

	courses, total, err := h.courseUseCase.SearchCourses(c.Request().Context(), filter, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, courses, total, params.Page, params.PageSize)
}

func (h *CourseHandler) CreateCategory(c echo.Context) error {
	var req struct {
		Name        string `json:"name" validate:"required,min=2"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.courseUseCase.CreateCategory(c.Request().Context(), usecase.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, category)
}

func (h *CourseHandler) ListCategories(c echo.Context) error {
	categories, err := h.courseUseCase.ListCategories(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, categories)
}

func (h *CourseHandler) Enroll(c echo.Context) error {
	uid := c.Get("uid").(string)

	progress, err := h.courseUseCase.Enroll(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, progress)
}

func (h *CourseHandler) GetProgress(c echo.Context) error {
	uid := c.Get("uid").(string)

	progress, err := h.courseUseCase.GetProgress(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}

func (h *CourseHandler) CompleteLesson(c echo.Context) error {
	uid := c.Get("uid").(string)

	progress, err := h.courseUseCase.CompleteLesson(c.Request().Context(), uid, c.Param("id"), c.Param("lessonId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}

func (h *CourseHandler) GetCertificate(c echo.Context) error {
	uid := c.Get("uid").(string)

	certificate, err := h.courseUseCase.GetCertificate(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, certificate)
}

// VerifyCertificate is public: anyone holding a certificate code can check
// its authenticity.
func (h *CourseHandler) VerifyCertificate(c echo.Context) error {
	certificate, err := h.courseUseCase.VerifyCertificate(c.Request().Context(), c.Param("code"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, certificate)
}
