package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/pkg/errors"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	users := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	return product, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []*entity.Product
	for _, p := range r.products {
		if p.SellerID == sellerID {
			products = append(products, p)
		}
	}
	return products, int64(len(products)), nil
}

func (r *fakeProductRepo) Search(ctx context.Context, filter repository.ProductSearchFilter, limit, offset int) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []*entity.Product
	for _, p := range r.products {
		if p.Status == entity.ProductStatusActive {
			products = append(products, p)
		}
	}
	return products, int64(len(products)), nil
}

func (r *fakeProductRepo) ListActiveWithLocation(ctx context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []*entity.Product
	for _, p := range r.products {
		if p.Status == entity.ProductStatusActive && p.Location != nil {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	if product.Quantity+delta < 0 {
		return nil, errors.BadRequest("Insufficient quantity for product "+product.Name, nil)
	}

	product.Quantity += delta
	if product.Quantity == 0 {
		product.Status = entity.ProductStatusSoldOut
	} else if product.Status == entity.ProductStatusSoldOut {
		product.Status = entity.ProductStatusActive
	}
	return product, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[string]*entity.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return order, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error) {
	var orders []*entity.Order
	for _, o := range r.orders {
		if o.BuyerID == buyerID {
			orders = append(orders, o)
		}
	}
	return orders, int64(len(orders)), nil
}

func (r *fakeOrderRepo) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Order, int64, error) {
	var orders []*entity.Order
	for _, o := range r.orders {
		if o.SellerID == sellerID {
			orders = append(orders, o)
		}
	}
	return orders, int64(len(orders)), nil
}

type fakePaymentRepo struct {
	payments map[string]*entity.Payment
}

func newFakePaymentRepo(payments ...*entity.Payment) *fakePaymentRepo {
	repo := &fakePaymentRepo{payments: make(map[string]*entity.Payment)}
	for _, p := range payments {
		repo.payments[p.ID] = p
	}
	return repo
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, errors.NotFound("Payment", nil)
	}
	return payment, nil
}

func (r *fakePaymentRepo) GetByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	for _, p := range r.payments {
		if p.Details.Reference == reference {
			return p, nil
		}
	}
	return nil, errors.NotFound("Payment", nil)
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Payment, int64, error) {
	var payments []*entity.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			payments = append(payments, p)
		}
	}
	return payments, int64(len(payments)), nil
}

type fakeNotificationRepo struct {
	notifications map[string]*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*entity.Notification)}
}

func (r *fakeNotificationRepo) Save(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	r.notifications[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	notification, ok := r.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	return notification, nil
}

func (r *fakeNotificationRepo) Update(ctx context.Context, notification *entity.Notification) error {
	r.notifications[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id string) error {
	delete(r.notifications, id)
	return nil
}

func (r *fakeNotificationRepo) ListByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	var notifications []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, int64(len(notifications)), nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

type fakeOutboxRepo struct {
	tasks []*entity.OutboxTask
}

func newFakeOutboxRepo() *fakeOutboxRepo {
	return &fakeOutboxRepo{}
}

func (r *fakeOutboxRepo) Create(ctx context.Context, task *entity.OutboxTask) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Status == "" {
		task.Status = entity.OutboxStatusPending
	}
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]*entity.OutboxTask, error) {
	var pending []*entity.OutboxTask
	for _, t := range r.tasks {
		if t.Status == entity.OutboxStatusPending {
			pending = append(pending, t)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (r *fakeOutboxRepo) Update(ctx context.Context, task *entity.OutboxTask) error {
	for i, t := range r.tasks {
		if t.ID == task.ID {
			r.tasks[i] = task
			return nil
		}
	}
	return errors.NotFound("Outbox task", nil)
}

type fakeCourseRepo struct {
	mu         sync.Mutex
	courses    map[string]*entity.Course
	categories map[string]*entity.Category
}

func newFakeCourseRepo(courses ...*entity.Course) *fakeCourseRepo {
	repo := &fakeCourseRepo{
		courses:    make(map[string]*entity.Course),
		categories: make(map[string]*entity.Category),
	}
	for _, c := range courses {
		repo.courses[c.ID] = c
	}
	return repo
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[id]
	if !ok {
		return nil, errors.NotFound("Course", nil)
	}
	clone := *course
	return &clone, nil
}

func (r *fakeCourseRepo) GetBySlug(ctx context.Context, slug string) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, errors.NotFound("Course", nil)
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourseRepo) IncrementEnrolledCount(ctx context.Context, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[courseID]
	if !ok {
		return errors.NotFound("Course", nil)
	}
	course.EnrolledCount++
	return nil
}

func (r *fakeCourseRepo) Search(ctx context.Context, filter repository.CourseSearchFilter, limit, offset int) ([]*entity.Course, int64, error) {
	var courses []*entity.Course
	for _, c := range r.courses {
		if c.IsPublished {
			courses = append(courses, c)
		}
	}
	return courses, int64(len(courses)), nil
}

func (r *fakeCourseRepo) CreateCategory(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCourseRepo) GetCategoryByID(ctx context.Context, id string) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, errors.NotFound("Category", nil)
	}
	return category, nil
}

func (r *fakeCourseRepo) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, errors.NotFound("Category", nil)
}

func (r *fakeCourseRepo) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories := make([]*entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *fakeCourseRepo) UpdateCategory(ctx context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

type fakeProgressRepo struct {
	mu           sync.Mutex
	progress     map[string]*entity.Progress
	certificates map[string]*entity.Certificate
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		progress:     make(map[string]*entity.Progress),
		certificates: make(map[string]*entity.Certificate),
	}
}

func progressKey(userID, courseID string) string {
	return userID + "_" + courseID
}

func (r *fakeProgressRepo) Create(ctx context.Context, progress *entity.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	progress.ID = progressKey(progress.UserID, progress.CourseID)
	r.progress[progress.ID] = progress
	return nil
}

func (r *fakeProgressRepo) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*entity.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	progress, ok := r.progress[progressKey(userID, courseID)]
	if !ok {
		return nil, errors.NotFound("Progress", nil)
	}
	return progress, nil
}

func (r *fakeProgressRepo) Update(ctx context.Context, progress *entity.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress[progress.ID] = progress
	return nil
}

func (r *fakeProgressRepo) CreateCertificate(ctx context.Context, certificate *entity.Certificate) error {
	certificate.ID = progressKey(certificate.UserID, certificate.CourseID)
	r.certificates[certificate.ID] = certificate
	return nil
}

func (r *fakeProgressRepo) GetCertificate(ctx context.Context, userID, courseID string) (*entity.Certificate, error) {
	certificate, ok := r.certificates[progressKey(userID, courseID)]
	if !ok {
		return nil, errors.NotFound("Certificate", nil)
	}
	return certificate, nil
}

func (r *fakeProgressRepo) GetCertificateByCode(ctx context.Context, code string) (*entity.Certificate, error) {
	for _, c := range r.certificates {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, errors.NotFound("Certificate", nil)
}

type fakeEmailSender struct {
	sent []sentEmail
	err  error
}

type sentEmail struct {
	To      string
	Subject string
	Body    string
}

func (s *fakeEmailSender) Send(to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{To: to, Subject: subject, Body: body})
	return nil
}
