// ABOUTME: CSV export of the workout log.
// ABOUTME: Writes the fixed four-column layout used by spreadsheet imports.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/harperreed/fitlog/internal/models"
)

// ErrNoWorkouts is returned when there is nothing to export.
var ErrNoWorkouts = errors.New("no workouts to export")

// CSVHeader is the first line of every CSV export.
const CSVHeader = "Date,Exercise Type,Duration (min),Calories"

// Filename returns the download name for a CSV export made on day.
func Filename(day models.Date) string {
	return fmt.Sprintf("fitness-tracker-%s.csv", day)
}

// WriteCSV writes the header and one row per workout in the given order.
// Fields are written verbatim: a comma inside a workout type is not quoted.
func WriteCSV(w io.Writer, workouts []models.Workout) error {
	if len(workouts) == 0 {
		return ErrNoWorkouts
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(CSVHeader + "\n"); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, wk := range workouts {
		if _, err := fmt.Fprintf(bw, "%s,%s,%d,%d\n", wk.Date, wk.Type, wk.Duration, wk.Calories); err != nil {
			return fmt.Errorf("write csv row %d: %w", wk.ID, err)
		}
	}
	return bw.Flush()
}
