// Command seed populates the database with demo accounts for local
// development. With -reset it first bulk-deletes all profiles, audit rows
// and users; this is the administrative reset path, the only place user
// rows are ever physically removed.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/farmsync/farmsync-api/internal/config"
	"github.com/farmsync/farmsync-api/internal/database"
	"github.com/farmsync/farmsync-api/internal/model"
	"github.com/farmsync/farmsync-api/internal/repository"
)

type seedUser struct {
	email      string
	name       string
	userType   string
	farmer     *model.FarmerProfile
	researcher *model.ResearcherProfile
}

const seedPassword = "password123"

var seedUsers = []seedUser{
	{
		email: "farmer1@example.com", name: "John Doe", userType: model.UserTypeFarmer,
		farmer: &model.FarmerProfile{FarmName: "Green Acres", Location: "Midwest, USA", FarmSize: 150.5,
			CropTypes: []string{"Corn", "Wheat", "Soybeans"}},
	},
	{
		email: "farmer2@example.com", name: "Sarah Miller", userType: model.UserTypeFarmer,
		farmer: &model.FarmerProfile{FarmName: "Sunrise Farms", Location: "California, USA", FarmSize: 75.2,
			CropTypes: []string{"Lettuce", "Strawberries", "Tomatoes"}},
	},
	{
		email: "farmer3@example.com", name: "Miguel Rodriguez", userType: model.UserTypeFarmer,
		farmer: &model.FarmerProfile{FarmName: "Rodriguez Family Farm", Location: "Texas, USA", FarmSize: 200.0,
			CropTypes: []string{"Cotton", "Peanuts", "Sorghum"}},
	},
	{
		email: "researcher1@example.com", name: "Dr. Emily Chen", userType: model.UserTypeResearcher,
		researcher: &model.ResearcherProfile{Institution: "Agricultural Research Institute", Specialization: "Soil Science",
			ResearchFocus: []string{"Soil Health", "Sustainable Farming"}, IsPolicymaker: false},
	},
	{
		email: "policymaker1@example.com", name: "Robert Wilson", userType: model.UserTypeResearcher,
		researcher: &model.ResearcherProfile{Institution: "Department of Agriculture", Specialization: "Agricultural Policy",
			ResearchFocus: []string{"Food Security", "Rural Development"}, IsPolicymaker: true},
	},
}

func main() {
	reset := flag.Bool("reset", false, "delete all users, profiles and audit rows before seeding")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if *reset {
		// Children first so foreign keys hold.
		for _, stmt := range []string{
			"DELETE FROM analysis_requests",
			"DELETE FROM researcher_profiles",
			"DELETE FROM farmer_profiles",
			"DELETE FROM users",
		} {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				log.Fatalf("reset: %v", err)
			}
		}
		log.Printf("database reset")
	}

	users := repository.NewUserRepo(db)
	for _, su := range seedUsers {
		if exists, err := users.Exists(ctx, su.email); err != nil {
			log.Fatalf("seed %s: %v", su.email, err)
		} else if exists {
			log.Printf("skip %s: already present", su.email)
			continue
		}

		uid, err := users.Create(ctx, su.email, seedPassword, su.name, su.userType, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("seed %s: %v", su.email, err)
		}
		switch {
		case su.farmer != nil:
			p := *su.farmer
			p.UserID = uid
			err = users.UpdateFarmerProfile(ctx, p)
		case su.researcher != nil:
			p := *su.researcher
			p.UserID = uid
			err = users.UpdateResearcherProfile(ctx, p)
		}
		if err != nil {
			log.Fatalf("seed %s profile: %v", su.email, err)
		}
		log.Printf("seeded %s (%s)", su.email, su.userType)
	}
	log.Printf("seeding completed")
}
