package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/app789plates/plates-backend/config"
	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/internal/app/service"
	"github.com/app789plates/plates-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Expected sheet columns:
// user_id, front_text, front_number, back_number, vehicle_type_id,
// plates_type_id, province_id, price, information
const minColumns = 8

type seedRow struct {
	userID uint
	input  service.CreatePlateInput
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readListingsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total listings to import: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// Imports run through the normal create path so every listing gets a
	// price history row and pattern memberships.
	plateService := service.NewPlateService(repository.NewPlateRepository(db.GetDB()))

	imported := 0
	skipped := 0
	for _, row := range rows {
		if _, err := plateService.Create(row.userID, row.input); err != nil {
			fmt.Printf("Skipping listing (user %d, back %d): %v\n",
				row.userID, row.input.BackNumber, err)
			skipped++
			continue
		}
		imported++
	}

	fmt.Println("Import completed!")
	fmt.Printf("Imported: %d, skipped: %d\n", imported, skipped)
}

func readListingsFromXLSX(filePath string) ([]seedRow, error) {
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

	var listings []seedRow
	skipped := 0

	for i, row := range rows {
		// First row is the header
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < minColumns {
			skipped++
			continue
		}

		userID, err1 := strconv.Atoi(strings.TrimSpace(row[0]))
		frontText := strings.TrimSpace(row[1])
		frontNumber, err2 := strconv.Atoi(strings.TrimSpace(row[2]))
		backNumber, err3 := strconv.Atoi(strings.TrimSpace(row[3]))
		vehicleTypeID, err4 := strconv.Atoi(strings.TrimSpace(row[4]))
		platesTypeID, err5 := strconv.Atoi(strings.TrimSpace(row[5]))
		provinceID, err6 := strconv.Atoi(strings.TrimSpace(row[6]))
		price, err7 := strconv.Atoi(strings.TrimSpace(row[7]))
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil ||
			err5 != nil || err6 != nil || err7 != nil || userID < 1 {
			skipped++
			continue
		}

		information := ""
		if len(row) > 8 {
			information = strings.TrimSpace(row[8])
		}

		listings = append(listings, seedRow{
			userID: uint(userID),
			input: service.CreatePlateInput{
				FrontText:     frontText,
				FrontNumber:   frontNumber,
				BackNumber:    backNumber,
				VehicleTypeID: vehicleTypeID,
				PlatesTypeID:  platesTypeID,
				ProvinceID:    provinceID,
				Information:   information,
				Total:         1,
				Price:         price,
			},
		})
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d malformed rows\n", skipped)
	}
	return listings, nil
}
