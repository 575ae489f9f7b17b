package entity

import "time"

type Category struct {
	ID           string    `json:"id" firestore:"id"`
	Name         string    `json:"name" firestore:"name"`
	Slug         string    `json:"slug" firestore:"slug"`
	Description  string    `json:"description" firestore:"description"`
	CoursesCount int       `json:"courses_count" firestore:"coursesCount"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Lesson struct {
	ID       string `json:"id" firestore:"id"`
	Title    string `json:"title" firestore:"title"`
	Content  string `json:"content" firestore:"content"`
	VideoURL string `json:"video_url,omitempty" firestore:"videoUrl,omitempty"`
	Duration int    `json:"duration,omitempty" firestore:"duration,omitempty"` // minutes
}

type Module struct {
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description,omitempty" firestore:"description,omitempty"`
	Lessons     []Lesson `json:"lessons" firestore:"lessons"`
}

type Course struct {
	ID            string    `json:"id" firestore:"id"`
	Title         string    `json:"title" firestore:"title"`
	Slug          string    `json:"slug" firestore:"slug"`
	Description   string    `json:"description" firestore:"description"`
	CategoryID    string    `json:"category_id" firestore:"categoryId"`
	InstructorID  string    `json:"instructor_id" firestore:"instructorId"`
	Thumbnail     string    `json:"thumbnail,omitempty" firestore:"thumbnail,omitempty"`
	Duration      int       `json:"duration" firestore:"duration"` // minutes
	Level         string    `json:"level" firestore:"level"`       // Beginner, Intermediate, Advanced
	Modules       []Module  `json:"modules" firestore:"modules"`
	IsPublished   bool      `json:"is_published" firestore:"isPublished"`
	EnrolledCount int       `json:"enrolled_count" firestore:"enrolledCount"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}

// TotalLessons counts lessons across all modules.
func (c *Course) TotalLessons() int {
	total := 0
	for _, m := range c.Modules {
		total += len(m.Lessons)
	}
	return total
}

// FindLesson returns the lesson with the given ID, if present.
func (c *Course) FindLesson(lessonID string) *Lesson {
	for _, m := range c.Modules {
		for i := range m.Lessons {
			if m.Lessons[i].ID == lessonID {
				return &m.Lessons[i]
			}
		}
	}
	return nil
}

type Progress struct {
	ID               string    `json:"id" firestore:"id"`
	UserID           string    `json:"user_id" firestore:"userId"`
	CourseID         string    `json:"course_id" firestore:"courseId"`
	CompletedLessons []string  `json:"completed_lessons" firestore:"completedLessons"`
	Percent          int       `json:"percent" firestore:"percent"`
	CreatedAt        time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt        time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Certificate struct {
	ID       string    `json:"id" firestore:"id"`
	UserID   string    `json:"user_id" firestore:"userId"`
	CourseID string    `json:"course_id" firestore:"courseId"`
	Code     string    `json:"code" firestore:"code"`
	IssuedAt time.Time `json:"issued_at" firestore:"issuedAt"`
}
