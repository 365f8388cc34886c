package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray-remotestate/enfes/database/dbhelper"
	"github.com/ray-remotestate/enfes/middlewares"
	"github.com/ray-remotestate/enfes/models"
)

type IndexData struct {
	FeaturedSubscriptions []models.HomepageSubscription `json:"featuredSubscriptions"`
	TodaysSubscriptions   []models.HomepageSubscription `json:"todaysSubscriptions"`
	Discover              []models.Meal                 `json:"discover"`
	ClickedSubscription   *models.HomepageSubscription  `json:"clickedSubscription,omitempty"`
}

type AuthFormData struct {
	RedirectTo string       `json:"redirectTo"`
	Error      string       `json:"error,omitempty"`
	Meal       *models.Meal `json:"meal,omitempty"`
}

type MealsData struct {
	Meals []models.MealWithCook `json:"meals"`
}

type MealData struct {
	Meal models.Meal  `json:"meal"`
	Cook *models.Cook `json:"cook"`
}

type OrdersData struct {
	Orders []models.SubscriptionOrder `json:"orders"`
}

type SubscriptionOrderData struct {
	SubscriptionOrder models.SubscriptionOrderDetails `json:"subscriptionOrder"`
	Addresses         []models.Address                `json:"addresses"`
	SelectedAddress   *uuid.UUID                      `json:"selectedAddress,omitempty"`
	ShowCreateAddress bool                            `json:"showCreateAddress"`
}

type CookMeData struct {
	User   models.User `json:"user"`
	IsCook bool        `json:"isCook"`
}

type CookMealsData struct {
	Meals []models.Meal `json:"meals"`
}

type CookSubscriptionsData struct {
	Subscriptions []models.SubscriptionWithMeal `json:"subscriptions"`
	Meals         []models.Meal                 `json:"meals"`
}

type DaySchedule struct {
	Day           string                        `json:"day"`
	Today         bool                          `json:"today"`
	Subscriptions []models.SubscriptionWithMeal `json:"subscriptions"`
}

type CookDashboardData struct {
	Cook models.Cook   `json:"cook"`
	Days []DaySchedule `json:"days"`
}

func requireUser(req LoadRequest) (*middlewares.Session, error) {
	if req.Session == nil {
		return nil, unauthenticated()
	}
	return req.Session, nil
}

func requireCook(req LoadRequest) (*middlewares.Session, error) {
	session, err := requireUser(req)
	if err != nil {
		return nil, err
	}
	if !session.IsCook() {
		return nil, forbidden("cook account required")
	}
	return session, nil
}

func pathID(req LoadRequest, name string) (uuid.UUID, error) {
	raw := req.Params[name]
	if raw == "" {
		return uuid.Nil, missingParam(name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalidParam(name)
	}
	return id, nil
}

func LoadIndex(ctx context.Context, req LoadRequest) (interface{}, error) {
	featured, err := dbhelper.GetFeaturedSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	todays, err := dbhelper.GetTodaysSubscriptions(ctx, models.DayName(req.Now))
	if err != nil {
		return nil, err
	}

	discover, err := dbhelper.GetRandomMeals(ctx)
	if err != nil {
		return nil, err
	}

	data := IndexData{FeaturedSubscriptions: featured, TodaysSubscriptions: todays, Discover: discover}

	// the subscribe modal only opens for signed-in visitors
	if raw := req.Query.Get("subscribe"); raw != "" && req.Session != nil {
		if id, err := uuid.Parse(raw); err == nil {
			data.ClickedSubscription, err = dbhelper.GetSubscriptionByID(ctx, id)
			if err != nil {
				return nil, err
			}
		}
	}
	return data, nil
}

func LoadAuthForm(ctx context.Context, req LoadRequest) (interface{}, error) {
	meal, err := dbhelper.GetRandomMeal(ctx)
	if err != nil {
		return nil, err
	}
	return AuthFormData{
		RedirectTo: safeRedirect(req.Query.Get("redirectTo"), "/"),
		Error:      req.Query.Get("error"),
		Meal:       meal,
	}, nil
}

func LoadMeals(ctx context.Context, _ LoadRequest) (interface{}, error) {
	meals, err := dbhelper.GetAllMeals(ctx)
	if err != nil {
		return nil, err
	}
	return MealsData{Meals: meals}, nil
}

func LoadMeal(ctx context.Context, req LoadRequest) (interface{}, error) {
	id, err := pathID(req, "mealId")
	if err != nil {
		return nil, err
	}

	meal, err := dbhelper.GetMealByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, notFound("meal")
	}

	cook, err := dbhelper.GetCookByID(ctx, meal.CookedBy)
	if err != nil {
		return nil, err
	}
	return MealData{Meal: *meal, Cook: cook}, nil
}

func LoadOrders(ctx context.Context, req LoadRequest) (interface{}, error) {
	session, err := requireUser(req)
	if err != nil {
		return nil, err
	}

	orders, err := dbhelper.GetUserSubscriptionOrders(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return OrdersData{Orders: orders}, nil
}

// LoadSubscriptionOrder backs the cart page of a placed subscription order.
func LoadSubscriptionOrder(ctx context.Context, req LoadRequest) (interface{}, error) {
	id, err := pathID(req, "subscriptionId")
	if err != nil {
		return nil, err
	}

	session, err := requireUser(req)
	if err != nil {
		return nil, err
	}

	userProfile, err := dbhelper.GetUserProfile(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if userProfile == nil {
		return nil, unauthenticated()
	}

	subscriptionOrder, err := dbhelper.GetSubscriptionOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// another user's order is reported the same way as a missing one
	if subscriptionOrder == nil || subscriptionOrder.UserID != userProfile.ID {
		return nil, notFound("subscriptionOrder")
	}

	addresses, err := dbhelper.GetUserAddresses(ctx, userProfile.ID)
	if err != nil {
		return nil, err
	}

	return SubscriptionOrderData{
		SubscriptionOrder: *subscriptionOrder,
		Addresses:         addresses,
		SelectedAddress:   selectedAddress(req, addresses, subscriptionOrder.AddressID),
		ShowCreateAddress: req.Query.Get("newAddress") == "1",
	}, nil
}

// selectedAddress picks the address chosen in the query, falling back to the order's own.
func selectedAddress(req LoadRequest, addresses []models.Address, current *uuid.UUID) *uuid.UUID {
	if raw := req.Query.Get("address"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			for _, a := range addresses {
				if a.ID == id {
					return &id
				}
			}
		}
	}
	return current
}

func LoadCookMe(ctx context.Context, req LoadRequest) (interface{}, error) {
	session, err := requireUser(req)
	if err != nil {
		return nil, err
	}

	user, err := dbhelper.GetUserProfile(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, unauthenticated()
	}
	return CookMeData{User: *user, IsCook: models.HasRole(user.Roles, models.RoleCook)}, nil
}

func LoadCookMeals(ctx context.Context, req LoadRequest) (interface{}, error) {
	session, err := requireCook(req)
	if err != nil {
		return nil, err
	}

	meals, err := dbhelper.GetMealsByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return CookMealsData{Meals: meals}, nil
}

func LoadCookSubscriptions(ctx context.Context, req LoadRequest) (interface{}, error) {
	session, err := requireCook(req)
	if err != nil {
		return nil, err
	}

	subscriptions, err := dbhelper.GetCookSubscriptions(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	meals, err := dbhelper.GetMealsByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return CookSubscriptionsData{Subscriptions: subscriptions, Meals: meals}, nil
}

func LoadCookDashboard(ctx context.Context, req LoadRequest) (interface{}, error) {
	session, err := requireCook(req)
	if err != nil {
		return nil, err
	}

	cook, err := dbhelper.GetCookByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if cook == nil {
		return nil, notFound("cook")
	}

	subscriptions, err := dbhelper.GetCookSubscriptions(ctx, cook.ID)
	if err != nil {
		return nil, err
	}

	today := models.DayName(req.Now)
	days := make([]DaySchedule, 0, len(models.DaysOfWeek))
	for _, day := range models.DaysOfWeek {
		schedule := DaySchedule{Day: day, Today: day == today, Subscriptions: []models.SubscriptionWithMeal{}}
		for _, s := range subscriptions {
			if s.DayOfWeek == day {
				schedule.Subscriptions = append(schedule.Subscriptions, s)
			}
		}
		days = append(days, schedule)
	}
	return CookDashboardData{Cook: *cook, Days: days}, nil
}
