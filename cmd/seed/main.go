package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/services"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

type seedOptions struct {
	email    string
	name     string
	password string
	demo     bool
}

// main creates the first super admin and, with --demo, a sample catalog.
// Usage: go run ./cmd/seed [--email ... --name ... --password ...] [--demo]
// Missing credentials are prompted for.
func main() {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the WaterLife super admin and optional demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&opts.email, "email", "", "super admin email")
	cmd.Flags().StringVar(&opts.name, "name", "", "super admin display name")
	cmd.Flags().StringVar(&opts.password, "password", "", "super admin password (min 8 characters)")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "also create demo categories, manufacturers, products and homepage sections")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts seedOptions) error {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("WATERLIFE - Super Admin Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.OpenGorm(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer config.CloseGorm(db)
	if err := repository.Migrate(db); err != nil {
		return err
	}

	promptCredentials(&opts)

	admins := repository.NewAdminRepository(db)
	if _, err := admins.GetByEmail(ctx, opts.email); err == nil {
		return fmt.Errorf("admin with email %q already exists", opts.email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := services.HashPassword(opts.password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	superAdmin := &models.Admin{
		Email:        opts.email,
		Name:         opts.name,
		PasswordHash: hash,
		Role:         models.RoleSuperAdmin,
	}
	if err := admins.Create(ctx, superAdmin); err != nil {
		return fmt.Errorf("create super admin: %w", err)
	}
	logger.Info("super admin created", zap.String("id", superAdmin.ID.String()), zap.String("email", superAdmin.Email))

	if opts.demo {
		if err := seedCatalog(ctx, catalogRepos{
			categories:    repository.NewCategoryRepository(db),
			manufacturers: repository.NewManufacturerRepository(db),
			products:      repository.NewProductRepository(db),
			content:       repository.NewContentRepository(db),
		}, logger); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println("✅ Done")
	fmt.Printf("Email: %s\n", superAdmin.Email)
	fmt.Printf("Role:  %s\n", superAdmin.Role)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run .")
	fmt.Println("2. Login at POST /api/admin/login with email and password")
	fmt.Println()
	return nil
}

// promptCredentials asks for every credential not given as a flag.
func promptCredentials(opts *seedOptions) {
	in := bufio.NewScanner(os.Stdin)
	ask := func(label string) string {
		fmt.Print(label)
		if !in.Scan() {
			return ""
		}
		return strings.TrimSpace(in.Text())
	}

	for opts.email == "" {
		if opts.email = strings.ToLower(ask("Email: ")); opts.email == "" {
			fmt.Println("❌ Email cannot be empty")
		}
	}
	for opts.name == "" {
		if opts.name = ask("Name: "); opts.name == "" {
			fmt.Println("❌ Name cannot be empty")
		}
	}
	for !services.ValidatePassword(opts.password) {
		if opts.password != "" {
			fmt.Println("❌ Password must be at least 8 characters")
		}
		opts.password = ask("Password (min 8 characters): ")
		if services.ValidatePassword(opts.password) && ask("Confirm Password: ") != opts.password {
			fmt.Println("❌ Passwords do not match")
			opts.password = ""
		}
	}
}

type catalogRepos struct {
	categories    repository.CategoryRepository
	manufacturers repository.ManufacturerRepository
	products      repository.ProductRepository
	content       repository.ContentRepository
}

type demoProduct struct {
	name, description, category, manufacturer string
	price                                     float64
	stock                                     int
	featured                                  bool
	specs                                     map[string]any
}

var demoProducts = []demoProduct{
	{"Kocioł kondensacyjny ecoTEC plus 25 kW", "Gazowy kocioł kondensacyjny z zasobnikiem c.w.u.", "Kotły", "Vaillant", 7890, 4, true, map[string]any{"moc": "25 kW", "klasa": "A"}},
	{"Kocioł gazowy Logamax plus GB172i", "Wiszący kocioł kondensacyjny, jednofunkcyjny.", "Kotły", "Buderus", 6450, 2, false, map[string]any{"moc": "20 kW"}},
	{"Pompa obiegowa ALPHA2 25-60", "Energooszczędna pompa obiegowa do c.o.", "Pompy", "Grundfos", 899, 15, true, map[string]any{"zasilanie": "230 V"}},
	{"Pompa głębinowa SQ 3-65", "Pompa do studni głębinowych z zabezpieczeniem przed suchobiegiem.", "Pompy", "Grundfos", 3290, 0, false, nil},
	{"Bateria umywalkowa Eurosmart", "Jednouchwytowa bateria umywalkowa, chrom.", "Armatura", "Grohe", 329, 30, false, nil},
	{"Zestaw prysznicowy Euphoria 260", "Deszczownica 260 mm z termostatem.", "Armatura", "Grohe", 2149, 6, true, nil},
	{"Sterownik nawadniania 6 sekcji", "Sterownik z aplikacją mobilną i czujnikiem deszczu.", "Nawadnianie", "Gardena", 749, 12, true, map[string]any{"sekcje": 6}},
	{"Zraszacz wynurzalny OS 140", "Zraszacz wahadłowy do trawników do 140 m².", "Nawadnianie", "Gardena", 119, 40, false, nil},
}

var demoSections = []models.HomepageSection{
	{Key: "hero", Title: "Ciepło, woda i ogród w jednym miejscu", Subtitle: "Kotły, pompy, armatura i systemy nawadniania", SortOrder: 1, Active: true,
		Content: datatypes.JSON(`{"cta":"Zobacz produkty","href":"/produkty"}`)},
	{Key: "banner-sezon-grzewczy", Title: "Sezon grzewczy", Subtitle: "Przygotuj instalację przed zimą", SortOrder: 2, Active: true,
		Content: datatypes.JSON(`{"href":"/produkty?category=kotly"}`)},
}

// seedCatalog reuses categories and manufacturers that already exist by name.
func seedCatalog(ctx context.Context, repos catalogRepos, logger *zap.Logger) error {
	categoryIDs := map[string]*models.Category{}
	manufacturerIDs := map[string]*models.Manufacturer{}

	existingCats, err := repos.categories.List(ctx)
	if err != nil {
		return err
	}
	for i := range existingCats {
		categoryIDs[existingCats[i].Name] = &existingCats[i].Category
	}
	existingMans, err := repos.manufacturers.List(ctx)
	if err != nil {
		return err
	}
	for i := range existingMans {
		manufacturerIDs[existingMans[i].Name] = &existingMans[i]
	}

	for i, p := range demoProducts {
		cat, ok := categoryIDs[p.category]
		if !ok {
			cat = &models.Category{Name: p.category, SortOrder: i}
			if err := repos.categories.Create(ctx, cat); err != nil {
				return fmt.Errorf("create category %s: %w", p.category, err)
			}
			categoryIDs[p.category] = cat
		}
		man, ok := manufacturerIDs[p.manufacturer]
		if !ok {
			man = &models.Manufacturer{Name: p.manufacturer}
			if err := repos.manufacturers.Create(ctx, man); err != nil {
				return fmt.Errorf("create manufacturer %s: %w", p.manufacturer, err)
			}
			manufacturerIDs[p.manufacturer] = man
		}

		product := &models.Product{
			Name:           p.name,
			Description:    p.description,
			Price:          p.price,
			Stock:          p.stock,
			CategoryID:     &cat.ID,
			ManufacturerID: &man.ID,
			Images:         models.ProductImages{},
			Specifications: p.specs,
			Featured:       p.featured,
		}
		if err := repos.products.Create(ctx, product); err != nil {
			return fmt.Errorf("create product %s: %w", p.name, err)
		}
	}

	for i := range demoSections {
		if err := repos.content.Upsert(ctx, &demoSections[i]); err != nil {
			return fmt.Errorf("upsert section %s: %w", demoSections[i].Key, err)
		}
	}

	logger.Info("demo catalog seeded",
		zap.Int("categories", len(categoryIDs)),
		zap.Int("manufacturers", len(manufacturerIDs)),
		zap.Int("products", len(demoProducts)),
	)

	// Show the first storefront page as shoppers will see it.
	p := catalog.NewPipeline(repository.CatalogSource{Products: repos.products}, logger)
	defer p.Close()
	if err := p.Refetch(ctx); err != nil {
		return fmt.Errorf("read back catalog: %w", err)
	}
	fmt.Println(catalog.StatusMessage(p.View(catalog.ClearFilters())))
	return nil
}
