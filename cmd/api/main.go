package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"agricsmart/internal/adapter/api"
	"agricsmart/internal/adapter/api/handler"
	apimiddleware "agricsmart/internal/adapter/api/middleware"
	"agricsmart/internal/adapter/api/router"
	"agricsmart/internal/adapter/repository"
	"agricsmart/internal/domain/service"
	"agricsmart/internal/infrastructure/ai"
	"agricsmart/internal/infrastructure/email"
	"agricsmart/internal/infrastructure/firebase"
	"agricsmart/internal/infrastructure/ratelimit"
	"agricsmart/internal/infrastructure/websocket"
	"agricsmart/internal/usecase"
	"agricsmart/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var opt option.ClientOption

	// Service account from environment variable (production) or file (local dev)
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./serviceAccountKey.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	paymentRepo := repository.NewFirestorePaymentRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	outboxRepo := repository.NewFirestoreOutboxRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	courseRepo := repository.NewFirestoreCourseRepository(firestoreClient)
	progressRepo := repository.NewFirestoreProgressRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	emailSender := email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, cfg.EmailEnabled)

	geminiClient, err := ai.NewGeminiClient(ctx, cfg.GeminiApiKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	feeCalc := service.NewDeliveryFeeCalculator()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	productUseCase := usecase.NewProductUseCase(productRepo, userRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, userRepo, outboxRepo, feeCalc)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, orderRepo, outboxRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, outboxRepo, orderRepo, userRepo, productRepo, emailSender)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, notificationRepo, wsManager, rateLimiter)
	courseUseCase := usecase.NewCourseUseCase(courseRepo, progressRepo, userRepo)
	advisoryUseCase := usecase.NewAdvisoryUseCase(geminiClient)

	notificationUseCase.StartDispatcher(ctx, time.Duration(cfg.OutboxIntervalSec)*time.Second)

	handler.Setup(authUseCase, userUseCase, productUseCase, orderUseCase, paymentUseCase, notificationUseCase, courseUseCase, advisoryUseCase)
	handler.SetupHealthHandler()
	handler.SetupDevTokenHandler(userRepo, cfg.DevTokenSecret)

	chatHandler := handler.NewChatHandler(chatUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, chatUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient, cfg.DevTokenSecret)
	roleMiddleware := apimiddleware.NewRoleMiddleware(userRepo)

	router.Setup(e, authMiddleware, roleMiddleware)
	router.SetupChatRouter(e, chatHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)
	router.SetupDevRouter(e, cfg.Environment)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
