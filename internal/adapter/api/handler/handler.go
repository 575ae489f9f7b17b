package handler

import (
	"agricsmart/internal/usecase"
)

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	productHandler      *ProductHandler
	orderHandler        *OrderHandler
	paymentHandler      *PaymentHandler
	notificationHandler *NotificationHandler
	courseHandler       *CourseHandler
	advisoryHandler     *AdvisoryHandler
	adminHandler        *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	productUseCase *usecase.ProductUseCase,
	orderUseCase *usecase.OrderUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	courseUseCase *usecase.CourseUseCase,
	advisoryUseCase *usecase.AdvisoryUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	productHandler = NewProductHandler(productUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	courseHandler = NewCourseHandler(courseUseCase)
	advisoryHandler = NewAdvisoryHandler(advisoryUseCase)
	adminHandler = NewAdminHandler(userUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetCourseHandler() *CourseHandler {
	return courseHandler
}

func GetAdvisoryHandler() *AdvisoryHandler {
	return advisoryHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
