package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mholecek/location-scout/internal/suncalc"
)

var sunCmd = &cobra.Command{
	Use:   "sun",
	Short: "Print solar events and golden-hour windows for a coordinate",
	Long: `Compute sunrise, sunset, solar noon, current sun position and
golden-hour information for a coordinate without starting the server.`,
	RunE: runSun,
}

func init() {
	rootCmd.AddCommand(sunCmd)

	sunCmd.Flags().Float64("lat", 0, "Latitude in decimal degrees")
	sunCmd.Flags().Float64("lng", 0, "Longitude in decimal degrees")
	sunCmd.Flags().String("at", "", "Time of interest in RFC 3339 (default now)")
	sunCmd.Flags().Int("golden-window", 30, "Golden-hour window in minutes around sunrise and sunset")
}

func runSun(cmd *cobra.Command, args []string) error {
	lat := mustGetFloat64(cmd, "lat")
	lng := mustGetFloat64(cmd, "lng")
	if lat < -90 || lat > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return errors.New("longitude must be between -180 and 180")
	}

	at := time.Now()
	if s := mustGetString(cmd, "at"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
		at = parsed
	}
	window := time.Duration(mustGetInt(cmd, "golden-window")) * time.Minute

	snapshot := suncalc.ComputeSnapshot(lat, lng, at)

	fmt.Printf("Sun at %.4f, %.4f on %s\n", lat, lng, at.Format("2006-01-02 15:04 MST"))
	fmt.Printf("  Sunrise:    %s\n", suncalc.FormatTime(snapshot.Sunrise))
	fmt.Printf("  Solar noon: %s\n", suncalc.FormatTime(snapshot.SolarNoon))
	fmt.Printf("  Sunset:     %s\n", suncalc.FormatTime(snapshot.Sunset))
	fmt.Printf("  Day length: %s\n", suncalc.FormatDayLength(snapshot.DayLengthMinutes))
	fmt.Printf("  Position:   %s (%s)\n",
		suncalc.FormatPosition(snapshot.AzimuthDeg, snapshot.AltitudeDeg),
		suncalc.CompassDirection(snapshot.AzimuthDeg))

	classification := suncalc.ClassifyGoldenHour(lat, lng, at, window)
	if classification.IsGolden {
		fmt.Printf("  Golden hour: %s, %d minutes remaining\n",
			classification.Type, classification.RemainingMinutes)
	} else {
		start, goldenType, err := suncalc.NextGoldenHour(lat, lng, at, window)
		if errors.Is(err, suncalc.ErrNoGoldenHour) {
			fmt.Println("  Golden hour: none within the next two days")
		} else if err == nil {
			fmt.Printf("  Next golden hour: %s starting %s\n",
				goldenType, start.Format("2006-01-02 15:04 MST"))
		}
	}
	return nil
}
