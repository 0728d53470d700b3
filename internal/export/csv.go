package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/fitsync/internal/model"
)

// MealsToCSV writes the meal log as a spreadsheet-friendly CSV file.
func MealsToCSV(meals []model.Meal, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Name", "Type", "Calories", "Protein (g)", "Carbs (g)", "Fats (g)", "Logged At"}); err != nil {
		return err
	}

	for _, m := range meals {
		row := []string{
			m.ID,
			m.Name,
			string(m.MealType),
			fmt.Sprintf("%d", m.Calories),
			fmt.Sprintf("%d", m.Protein),
			fmt.Sprintf("%d", m.Carbs),
			fmt.Sprintf("%d", m.Fats),
			m.Timestamp.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
