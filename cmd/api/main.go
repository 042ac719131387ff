package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"piauitickets/internal/adapter/api"
	"piauitickets/internal/adapter/api/handler"
	apimiddleware "piauitickets/internal/adapter/api/middleware"
	"piauitickets/internal/adapter/api/router"
	"piauitickets/internal/adapter/repository"
	"piauitickets/internal/infrastructure/device"
	"piauitickets/internal/infrastructure/firebase"
	"piauitickets/internal/infrastructure/localstore"
	"piauitickets/internal/infrastructure/websocket"
	"piauitickets/internal/usecase"
	"piauitickets/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	localStorage, err := localstore.NewSQLiteStore(cfg.OfflineDBPath)
	if err != nil {
		log.Fatalf("Failed to open offline store: %v", err)
	}

	gameDataRepo := repository.NewFirestoreGameDataRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	eventRepo := repository.NewFirestoreEventRepository(firestoreClient)
	ticketRepo := repository.NewFirestoreTicketRepository(firestoreClient)

	spaceChecker := device.NewSpaceChecker(cfg.OfflineDataDir)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	gamificationUseCase := usecase.NewGamificationUseCase(gameDataRepo, wsManager)
	offlineUseCase := usecase.NewOfflineUseCase(userRepo, eventRepo, ticketRepo, localStorage, spaceChecker, cfg.MinFreeSpaceMB)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	gamificationHandler := handler.NewGamificationHandler(gamificationUseCase)
	offlineHandler := handler.NewOfflineHandler(offlineUseCase)
	healthHandler := handler.NewHealthHandler(firebaseAuthClient)
	wsHandler := handler.NewWebSocketHandler(wsManager, firebaseAuthClient)
	devTokenHandler := handler.NewDevTokenHandler(firebaseAuthClient)

	router.SetupHealthRouter(e, healthHandler)
	router.SetupGamificationRouter(e, gamificationHandler, authMiddleware)
	router.SetupOfflineRouter(e, offlineHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)
	router.SetupDevRouter(e, devTokenHandler, cfg.Environment)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
