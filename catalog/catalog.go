// Package catalog manages the service offerings. Public callers only
// ever see active services; the admin surface has the full CRUD.
package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"barbearia/db"
	"barbearia/models"
	"barbearia/rdx"
	"barbearia/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	activeCacheKey = "services:active"
	activeCacheTTL = 60 * time.Second

	defaultDuration = 60
)

// ServiceInput is the admin create/update payload.
type ServiceInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Active      *bool   `json:"active"`
}

// validate normalizes the payload. Empty duration falls back to the
// default; a negative price or duration never passes.
func (in *ServiceInput) validate() bool {
	if in.Name == "" || in.Price <= 0 {
		return false
	}
	if in.Duration == 0 {
		in.Duration = defaultDuration
	}
	return in.Duration > 0
}

// GET /servicos
func GetActiveServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached := rdx.CacheGet(activeCacheKey); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	cur, err := db.ServicesCollection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		log.Println("Failed to fetch services:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Erro ao buscar serviços")
		return
	}
	defer cur.Close(ctx)

	services := []models.Service{}
	if err := cur.All(ctx, &services); err != nil {
		log.Println("Failed to decode services:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Erro ao buscar serviços")
		return
	}

	payload, err := json.Marshal(services)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Erro ao buscar serviços")
		return
	}
	rdx.CacheSet(activeCacheKey, string(payload), activeCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// GET /admin/servicos
func GetAllServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := db.ServicesCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("Failed to fetch services:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Erro ao buscar serviços")
		return
	}
	defer cur.Close(ctx)

	services := []models.Service{}
	if err := cur.All(ctx, &services); err != nil {
		log.Println("Failed to decode services:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Erro ao buscar serviços")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, services)
}

// POST /admin/servicos
func CreateService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var in ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || !in.validate() {
		utils.RespondWithError(w, http.StatusBadRequest, "Nome e preço são obrigatórios")
		return
	}

	service := models.Service{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Duration:    in.Duration,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	res, err := db.ServicesCollection.InsertOne(ctx, service)
	if err != nil {
		log.Println("Failed to create service:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Erro ao criar serviço")
		return
	}
	service.ID = res.InsertedID.(primitive.ObjectID)

	rdx.CacheDel(activeCacheKey)
	utils.RespondWithJSON(w, http.StatusCreated, service)
}

// PUT /admin/servicos/:id
//
// Soft-disable (active=false) is the preferred removal path; history
// keeps the entry.
func UpdateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Serviço não encontrado")
		return
	}

	var in ServiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || !in.validate() {
		utils.RespondWithError(w, http.StatusBadRequest, "Nome e preço são obrigatórios")
		return
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}

	res, err := db.ServicesCollection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":        in.Name,
			"price":       in.Price,
			"description": in.Description,
			"duration":    in.Duration,
			"active":      active,
		}},
	)
	if err != nil {
		log.Println("Failed to update service:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Erro ao atualizar serviço")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Serviço não encontrado")
		return
	}

	rdx.CacheDel(activeCacheKey)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Serviço atualizado com sucesso"})
}

// DELETE /admin/servicos/:id
func DeleteService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Serviço não encontrado")
		return
	}

	res, err := db.ServicesCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		log.Println("Failed to delete service:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Erro ao deletar serviço")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Serviço não encontrado")
		return
	}

	rdx.CacheDel(activeCacheKey)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Serviço deletado com sucesso"})
}
