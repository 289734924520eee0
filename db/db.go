package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	RequestsCollection     *mongo.Collection
	AppointmentsCollection *mongo.Collection
	ServicesCollection     *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "barbearia"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	RequestsCollection = Client.Database(dbName).Collection("requests")
	AppointmentsCollection = Client.Database(dbName).Collection("appointments")
	ServicesCollection = Client.Database(dbName).Collection("services")

	seedDefaultServices()
}

type seedService struct {
	Name        string    `bson:"name"`
	Price       float64   `bson:"price"`
	Description string    `bson:"description"`
	Duration    int       `bson:"duration"`
	Active      bool      `bson:"active"`
	CreatedAt   time.Time `bson:"created_at"`
}

// seedDefaultServices inserts the starter catalog the first time the
// service runs against an empty database.
func seedDefaultServices() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := ServicesCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Println("Failed to count services:", err)
		return
	}
	if count > 0 {
		return
	}

	now := time.Now()
	defaults := []interface{}{
		seedService{Name: "Corte", Price: 40.0, Description: "Corte de cabelo", Duration: 30, Active: true, CreatedAt: now},
		seedService{Name: "Barba", Price: 30.0, Description: "Barba completa", Duration: 30, Active: true, CreatedAt: now},
		seedService{Name: "Corte + Barba", Price: 60.0, Description: "Combo completo", Duration: 60, Active: true, CreatedAt: now},
		seedService{Name: "Sobrancelha", Price: 15.0, Description: "Design de sobrancelha", Duration: 15, Active: true, CreatedAt: now},
	}
	if _, err := ServicesCollection.InsertMany(ctx, defaults); err != nil {
		log.Println("Failed to seed default services:", err)
		return
	}
	log.Println("Default services inserted")
}
