package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/plumeworks/plume-be/config"
	"github.com/plumeworks/plume-be/db/mysql"
	"github.com/plumeworks/plume-be/routes"
	"github.com/plumeworks/plume-be/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	database, err := mysql.GetDatabase(cfg.DSN())
	if err != nil {
		log.Fatal("Received err when attempting to connect to DB", err)
	}
	defer database.Close()

	if err := configureFirebaseCredentials(); err != nil {
		log.Fatal("an error occurred while configuring firebase credentials", err)
	}
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase: %v\n", err)
	}
	authClient, err := app.Auth(context.Background())
	if err != nil {
		log.Fatal("error initializing auth client", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FEOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	uploadBucket, err := services.NewStorageBucket(context.Background(), app, cfg.UploadBucket)
	if err != nil {
		log.Fatal("An error occurred while connecting to the uploads bucket", err)
	}

	routes.AddHealthCheckRoutes(&r.RouterGroup)
	routes.AddFeedRoutes(&r.RouterGroup, database)
	routes.AddGroupRoutes(&r.RouterGroup, database)
	routes.AddPostRoutes(&r.RouterGroup, database, authClient, uploadBucket)
	routes.AddUserRoutes(&r.RouterGroup, database, authClient)
	routes.AddUploadRoutes(&r.RouterGroup, database, authClient, uploadBucket)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error when attempting to run web server", err)
	}
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		log.Printf("Credentials path detected in env. Expecting credentials to be at %v\n", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		log.Println("Credentials JSON string detected in env.")
		if err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 0400); err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		if err := os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile); err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
