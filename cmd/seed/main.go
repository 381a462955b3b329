package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jmalhotra/stitchmart-backend/config"
	"github.com/jmalhotra/stitchmart-backend/internal/app/model"
	"github.com/jmalhotra/stitchmart-backend/internal/app/repository"
	"github.com/jmalhotra/stitchmart-backend/internal/db"
	"github.com/jmalhotra/stitchmart-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Seeds the catalog either from an XLSX export (column layout below) or with
// generated demo data:
//
//	go run cmd/seed/main.go <xlsx_file_path>
//	go run cmd/seed/main.go --demo [count]
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> | --demo [count]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database, err := db.Initialize(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(database)
	productRepo := repository.NewProductRepository(database)

	adminID, err := ensureAdmin(userRepo)
	if err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	var products []model.Product
	if os.Args[1] == "--demo" {
		count := 40
		if len(os.Args) > 2 {
			if v, err := strconv.Atoi(os.Args[2]); err == nil && v > 0 {
				count = v
			}
		}
		products = generateDemoProducts(count, adminID)
		fmt.Printf("Generated %d demo products\n", len(products))
	} else {
		filePath := os.Args[1]
		fmt.Printf("Reading XLSX file: %s\n", filePath)
		products, err = readProductsFromXLSX(filePath, adminID)
		if err != nil {
			log.Fatal("Failed to read XLSX:", err)
		}
		fmt.Printf("Total products to import: %d\n", len(products))
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			fmt.Printf("Skipping %s: %v\n", products[i].SKU, err)
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", imported)
}

// ensureAdmin creates the default admin account when it does not exist and
// returns its id so seeded products have an owner.
func ensureAdmin(userRepo repository.UserRepository) (uint, error) {
	const adminEmail = "admin@stitchmart.com"

	if admin, err := userRepo.FindByEmail(adminEmail); err == nil {
		return admin.ID, nil
	}

	hash, err := util.HashPassword("admin123")
	if err != nil {
		return 0, err
	}
	admin := &model.User{
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		return 0, err
	}
	fmt.Printf("Created admin user: %s\n", adminEmail)
	return admin.ID, nil
}

// Expected columns:
// 0 name, 1 sku, 2 description, 3 price, 4 discount_price, 5 stock,
// 6 category, 7 brand, 8 material, 9 sizes (comma), 10 colors (comma),
// 11 collections (comma), 12 gender, 13 image_url
func readProductsFromXLSX(filePath string, adminID uint) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}
	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenSKUs := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 14 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		sku := strings.TrimSpace(row[1])
		description := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])
		discountStr := strings.TrimSpace(row[4])
		stockStr := strings.TrimSpace(row[5])
		category := strings.TrimSpace(row[6])
		brand := strings.TrimSpace(row[7])
		material := strings.TrimSpace(row[8])
		sizes := splitList(row[9])
		colors := splitList(row[10])
		collections := splitList(row[11])
		gender := strings.TrimSpace(row[12])
		imageURL := strings.TrimSpace(row[13])

		if name == "" || sku == "" || category == "" {
			skippedCount++
			continue
		}
		if seenSKUs[sku] {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			skippedCount++
			continue
		}

		var discountPrice *float64
		if discountStr != "" {
			if v, err := strconv.ParseFloat(discountStr, 64); err == nil && v > 0 && v < price {
				discountPrice = &v
			}
		}

		stock := 0
		if v, err := strconv.Atoi(stockStr); err == nil && v > 0 {
			stock = v
		}

		if !model.ValidGender(gender) {
			gender = string(model.GenderUnisex)
		}

		product := model.Product{
			Name:          name,
			Description:   description,
			Price:         price,
			DiscountPrice: discountPrice,
			CountInStock:  stock,
			SKU:           sku,
			Category:      category,
			Brand:         brand,
			Material:      material,
			Sizes:         sizes,
			Colors:        colors,
			Collections:   collections,
			Gender:        model.Gender(gender),
			IsPublished:   true,
			UserID:        adminID,
		}
		if imageURL != "" {
			product.Images = model.ImageList{{URL: imageURL, AltText: name}}
		}

		seenSKUs[sku] = true
		products = append(products, product)
	}

	fmt.Printf("Skipped rows: %d\n", skippedCount)
	return products, nil
}

func generateDemoProducts(count int, adminID uint) []model.Product {
	categories := []string{"Top Wear", "Bottom Wear", "Outerwear", "Accessories"}
	materials := []string{"Cotton", "Linen", "Wool", "Denim", "Silk"}
	collections := []string{"Summer Collection", "Winter Collection", "Casual Wear", "Formal Wear"}
	genders := []model.Gender{model.GenderMen, model.GenderWomen, model.GenderUnisex}
	sizes := []string{"XS", "S", "M", "L", "XL"}

	products := make([]model.Product, 0, count)
	for i := 0; i < count; i++ {
		price := gofakeit.Price(15, 250)
		product := model.Product{
			Name:         gofakeit.ProductName(),
			Description:  gofakeit.ProductDescription(),
			Price:        price,
			CountInStock: gofakeit.Number(0, 120),
			SKU:          fmt.Sprintf("SKU-%s", strings.ToUpper(gofakeit.LetterN(8))),
			Category:     gofakeit.RandomString(categories),
			Brand:        gofakeit.Company(),
			Material:     gofakeit.RandomString(materials),
			Sizes:        sizes[:gofakeit.Number(2, len(sizes))],
			Colors:       []string{gofakeit.Color(), gofakeit.Color()},
			Collections:  []string{gofakeit.RandomString(collections)},
			Gender:       genders[gofakeit.Number(0, len(genders)-1)],
			IsFeatured:   gofakeit.Bool(),
			IsPublished:  true,
			Rating:       float64(gofakeit.Number(10, 50)) / 10,
			NumReviews:   gofakeit.Number(0, 400),
			UserID:       adminID,
			Images: model.ImageList{{
				URL:     fmt.Sprintf("https://picsum.photos/seed/%d/600/800", gofakeit.Number(1, 100000)),
				AltText: "Product image",
			}},
		}
		if gofakeit.Bool() {
			discount := price * 0.8
			product.DiscountPrice = &discount
		}
		products = append(products, product)
	}
	return products
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
