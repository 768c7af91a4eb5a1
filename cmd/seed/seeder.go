package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"hoagiehub/dto"
	"hoagiehub/internal/models"
)

var sampleUsers = []dto.CreateUserReq{
	{Name: "Alice Johnson", Email: "alice@example.com"},
	{Name: "Bob Smith", Email: "bob@example.com"},
	{Name: "Charlie Davis", Email: "charlie@example.com"},
	{Name: "Diana Miller", Email: "diana@example.com"},
	{Name: "Edward Wilson", Email: "edward@example.com"},
}

var hoagieImages = []string{
	"https://neuroticmommy.com/wp-content/uploads/2015/08/healthified-super-veggie-hoagie4.jpg",
	"https://veginspired.com/wp-content/uploads/IMG_9368.jpg",
	"https://imagedelivery.net/olI9wp0b6luWFB9nPfnqjQ/res/abillionveg/image/upload/uo54k9o7ozoy0ol2egkm/1609355733.jpg/w=640,quality=75",
	"https://mysubway.ro/wp-content/uploads/2019/08/Spicy-vegan-02.jpg",
}

var ingredientSets = [][]string{
	{"Lettuce", "Tomato", "Onion", "Bell Pepper", "Cucumber"},
	{"Spinach", "Avocado", "Sprouts", "Mushrooms", "Olives"},
	{"Hummus", "Tofu", "Chickpeas", "Eggplant", "Zucchini"},
	{"Pesto", "Vegan Cheese", "Artichoke", "Sun-dried Tomatoes", "Arugula"},
	{"Pickles", "Jalapeños", "Vegan Mayo", "Mustard", "Balsamic Glaze"},
}

type userCreator interface {
	Create(ctx context.Context, req dto.CreateUserReq) (*models.User, error)
}

type hoagieCreator interface {
	Create(ctx context.Context, req dto.CreateHoagieReq) (*dto.HoagieResp, error)
}

type seeder struct {
	Users   userCreator
	Hoagies hoagieCreator
	Rand    *rand.Rand
}

// sampleUser returns the i-th sample account, inventing more once the fixed
// list runs out.
func sampleUser(i int) dto.CreateUserReq {
	if i < len(sampleUsers) {
		return sampleUsers[i]
	}
	n := i + 1
	return dto.CreateUserReq{Name: fmt.Sprintf("Sample User%d", n), Email: fmt.Sprintf("user%d@example.com", n)}
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return name
}

// Run creates the requested number of users and perUser hoagies for each.
func (s *seeder) Run(ctx context.Context, users, perUser int) (int, int, error) {
	hoagies := 0
	for i := 0; i < users; i++ {
		u, err := s.Users.Create(ctx, sampleUser(i))
		if err != nil {
			return i, hoagies, fmt.Errorf("create user %d: %w", i+1, err)
		}
		slog.Info("created user", "name", u.Name)

		for j := 0; j < perUser; j++ {
			h, err := s.Hoagies.Create(ctx, dto.CreateHoagieReq{
				Name:        fmt.Sprintf("%s's Hoagie #%d", firstName(u.Name), j+1),
				Ingredients: ingredientSets[s.Rand.IntN(len(ingredientSets))],
				Picture:     hoagieImages[s.Rand.IntN(len(hoagieImages))],
				UserID:      u.ID.Hex(),
			})
			if err != nil {
				return i + 1, hoagies, fmt.Errorf("create hoagie for %s: %w", u.Name, err)
			}
			hoagies++
			slog.Debug("created hoagie", "name", h.Name, "creator", u.Name)
		}
	}
	return users, hoagies, nil
}
