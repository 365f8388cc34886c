package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/ray-remotestate/enfes/database"
	"github.com/ray-remotestate/enfes/database/dbhelper"
	"github.com/ray-remotestate/enfes/metrics"
	"github.com/ray-remotestate/enfes/middlewares"
	"github.com/ray-remotestate/enfes/models"
	"github.com/sirupsen/logrus"
)

func badRequest(message string) error {
	return &LoadError{Kind: ErrMissingParam, Message: message}
}

func actionRequest(r *http.Request) LoadRequest {
	return LoadRequest{
		Session: middlewares.GetSession(r),
		Params:  mux.Vars(r),
		Query:   r.URL.Query(),
		Now:     now(),
	}
}

func CreateMeal(w http.ResponseWriter, r *http.Request) {
	session, err := requireCook(actionRequest(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	in, err := readInput(r)
	if err != nil {
		respondError(w, r, badRequest("invalid input"))
		return
	}

	if in["title"] == "" {
		respondError(w, r, badRequest("title is required"))
		return
	}
	price, err := strconv.ParseFloat(in["price"], 64)
	if err != nil || price < 0 {
		respondError(w, r, badRequest("price must be a non-negative number"))
		return
	}

	meal, err := dbhelper.CreateMeal(r.Context(), models.CreateMealInput{
		CookedBy:    session.UserID,
		Title:       in["title"],
		Description: in["description"],
		Price:       price,
		Image:       in["image"],
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	metrics.RecordMealCreated()

	respondCreated(w, r, meal, "/cook/me/meals")
}

func CreateSubscription(w http.ResponseWriter, r *http.Request) {
	session, err := requireCook(actionRequest(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	in, err := readInput(r)
	if err != nil {
		respondError(w, r, badRequest("invalid input"))
		return
	}

	mealID, err := uuid.Parse(in["meal_id"])
	if err != nil {
		respondError(w, r, badRequest("invalid meal_id"))
		return
	}
	if !models.IsValidDay(in["day_of_week"]) {
		respondError(w, r, badRequest("invalid day_of_week"))
		return
	}
	if _, _, err := models.ParseClock(in["delivery_time"]); err != nil {
		respondError(w, r, badRequest("delivery_time must be HH:MM"))
		return
	}

	meal, err := dbhelper.GetMealByID(r.Context(), mealID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if meal == nil || meal.CookedBy != session.UserID {
		respondError(w, r, notFound("meal"))
		return
	}

	featured, _ := strconv.ParseBool(in["featured"])
	sub, err := dbhelper.CreateSubscription(r.Context(), models.CreateSubscriptionInput{
		CookID:       session.UserID,
		MealID:       meal.ID,
		DayOfWeek:    in["day_of_week"],
		DeliveryTime: in["delivery_time"],
		Featured:     featured,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondCreated(w, r, sub, "/cook/me/subscriptions")
}

func AddAddress(w http.ResponseWriter, r *http.Request) {
	session, err := requireUser(actionRequest(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	in, err := readInput(r)
	if err != nil {
		respondError(w, r, badRequest("invalid input"))
		return
	}

	if in["address"] == "" {
		respondError(w, r, badRequest("address is required"))
		return
	}

	var latitude, longitude float64
	if raw := in["latitude"]; raw != "" {
		if latitude, err = strconv.ParseFloat(raw, 64); err != nil {
			respondError(w, r, badRequest("invalid latitude"))
			return
		}
	}
	if raw := in["longitude"]; raw != "" {
		if longitude, err = strconv.ParseFloat(raw, 64); err != nil {
			respondError(w, r, badRequest("invalid longitude"))
			return
		}
	}

	address, err := dbhelper.CreateAddress(r.Context(), models.CreateAddressInput{
		UserID:      session.UserID,
		Title:       in["title"],
		AddressLine: in["address"],
		Latitude:    latitude,
		Longitude:   longitude,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondCreated(w, r, address, safeRedirect(in["redirectTo"], "/orders"))
}

// Subscribe places an order against a subscription for its next delivery.
func Subscribe(w http.ResponseWriter, r *http.Request) {
	req := actionRequest(r)
	session, err := requireUser(req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	subscriptionID, err := pathID(req, "subscriptionId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	in, err := readInput(r)
	if err != nil {
		respondError(w, r, badRequest("invalid input"))
		return
	}

	quantity := 1
	if raw := in["quantity"]; raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil || quantity < 1 {
			respondError(w, r, badRequest("quantity must be a positive integer"))
			return
		}
	}

	subscription, err := dbhelper.GetSubscriptionByID(r.Context(), subscriptionID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if subscription == nil {
		respondError(w, r, notFound("subscription"))
		return
	}

	deliveryTime, err := models.NextDelivery(subscription.DayOfWeek, subscription.DeliveryTime, req.Now)
	if err != nil {
		respondError(w, r, err)
		return
	}

	order, err := dbhelper.CreateSubscriptionOrder(r.Context(), models.CreateSubscriptionOrderInput{
		SubscriptionID: subscription.ID,
		UserID:         session.UserID,
		Quantity:       quantity,
		DeliveryTime:   deliveryTime,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	metrics.RecordOrderPlaced(subscription.DayOfWeek)
	logrus.WithFields(logrus.Fields{
		"order_id":        order.ID,
		"subscription_id": subscription.ID,
		"quantity":        quantity,
	}).Info("subscription order placed")

	respondCreated(w, r, order, "/orders/"+order.ID.String())
}

// Checkout attaches the chosen delivery address to the caller's order.
func Checkout(w http.ResponseWriter, r *http.Request) {
	req := actionRequest(r)
	session, err := requireUser(req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	orderID, err := pathID(req, "subscriptionId")
	if err != nil {
		respondError(w, r, err)
		return
	}

	in, err := readInput(r)
	if err != nil {
		respondError(w, r, badRequest("invalid input"))
		return
	}
	addressID, err := uuid.Parse(in["address_id"])
	if err != nil {
		respondError(w, r, badRequest("select an address"))
		return
	}

	updated, err := dbhelper.SetSubscriptionOrderAddress(r.Context(), orderID, session.UserID, addressID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !updated {
		respondError(w, r, notFound("subscriptionOrder"))
		return
	}
	metrics.RecordCheckout()

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{
			"message":    "Order confirmed",
			"order_id":   orderID.String(),
			"address_id": addressID.String(),
		})
		return
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

// BecomeCook creates the caller's cook profile, grants the cook role and refreshes the session.
func BecomeCook(w http.ResponseWriter, r *http.Request) {
	session, err := requireUser(actionRequest(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	// the session may predate a role granted elsewhere
	isCook := session.IsCook()
	if !isCook {
		if isCook, err = dbhelper.HasRole(r.Context(), session.UserID, models.RoleCook); err != nil {
			respondError(w, r, err)
			return
		}
	}
	if isCook {
		respondError(w, r, &LoadError{Kind: ErrConflict, Message: "already a cook"})
		return
	}

	in, err := readInput(r)
	if err != nil {
		respondError(w, r, badRequest("invalid input"))
		return
	}
	if in["name"] == "" {
		respondError(w, r, badRequest("name is required"))
		return
	}

	txErr := database.Tx(func(tx *sqlx.Tx) error {
		if err := dbhelper.CreateCook(tx, session.UserID, in["name"], in["bio"]); err != nil {
			return err
		}
		return dbhelper.AssignRole(tx, session.UserID, models.RoleCook)
	})
	if isUniqueViolation(txErr) {
		respondError(w, r, &LoadError{Kind: ErrConflict, Message: "already a cook"})
		return
	}
	if txErr != nil {
		respondError(w, r, txErr)
		return
	}

	roles := append(append([]string{}, session.Roles...), string(models.RoleCook))
	if err := startSession(w, session.UserID, roles); err != nil {
		respondError(w, r, err)
		return
	}

	cook := models.Cook{ID: session.UserID, Name: in["name"], Bio: in["bio"]}
	respondCreated(w, r, cook, "/cook/me")
}
