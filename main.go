package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"wanderlink_server/routes"
	"wanderlink_server/services"
	"wanderlink_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Persisted tier for the viewed set and the result cache: Redis when
	// reachable, memory-only otherwise
	var blobStore services.BlobStore
	if redisClient, err := initRedis(); err != nil {
		log.Printf("⚠️ Redis unavailable, persisting in memory only: %v", err)
		blobStore = services.NewMemoryBlobStore()
	} else {
		log.Println("✅ Redis connected.")
		blobStore = &services.RedisBlobStore{Client: redisClient}
	}

	ctx := context.Background()
	cache := services.NewCacheService(blobStore)
	cache.StartJanitor(time.Minute)
	defer cache.StopJanitor()

	// Initialize Services. The search client and result cache are shared;
	// the viewed set and filter belong to one user's session, so they are
	// built per user inside the factory.
	searchService := &services.ItinerarySearchService{Dynamo: dynamoService}
	sessions := services.NewSessionManager(func(userID string) *services.SearchOrchestrator {
		viewedSet := services.NewViewedSetService(ctx, blobStore, userID)
		return &services.SearchOrchestrator{
			Client:    searchService,
			Filter:    &services.FilterService{ViewedSet: viewedSet},
			Cache:     cache,
			ViewedSet: viewedSet,
		}
	})

	// Socket.IO server for connection notifications
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("❌ Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	interactionService := &services.InteractionService{Dynamo: dynamoService, Socket: socketServer}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to WanderLink")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterSearchRoutes(r, sessions)
	routes.RegisterInteractionRoutes(r, interactionService)
	routes.RegisterS3Routes(r)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}

// initRedis connects to Redis using REDIS_HOST/REDIS_PORT/REDIS_PASSWORD
func initRedis() (*redis.Client, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
