package booking

import (
	"context"

	"barbearia/db"
	"barbearia/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoStore backs the engine with the shared Mongo collections.
type mongoStore struct{}

func (mongoStore) InsertRequest(ctx context.Context, req *models.Request) error {
	res, err := db.RequestsCollection.InsertOne(ctx, req)
	if err != nil {
		return err
	}
	req.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (mongoStore) FindPending(ctx context.Context, id string) (*models.Request, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var req models.Request
	err = db.RequestsCollection.FindOne(ctx, bson.M{
		"_id":    oid,
		"status": models.StatusPending,
	}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// TransitionIfStatus is the atomic conditional status update: the filter
// carries the expected status, so the flip only happens when nobody got
// there first. ModifiedCount says whether this caller won.
func (mongoStore) TransitionIfStatus(ctx context.Context, id, from, to string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := db.RequestsCollection.UpdateOne(ctx,
		bson.M{"_id": oid, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (mongoStore) InsertAppointment(ctx context.Context, appt *models.Appointment) error {
	res, err := db.AppointmentsCollection.InsertOne(ctx, appt)
	if err != nil {
		return err
	}
	appt.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (mongoStore) ListPending(ctx context.Context) ([]models.Request, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := db.RequestsCollection.Find(ctx, bson.M{"status": models.StatusPending}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	requests := []models.Request{}
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (mongoStore) ListConfirmed(ctx context.Context) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cur, err := db.AppointmentsCollection.Find(ctx, bson.M{"status": models.StatusConfirmed}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	appointments := []models.Appointment{}
	if err := cur.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}
