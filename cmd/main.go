package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/UnknownOlympus/overhead/internal/flights"
	"github.com/UnknownOlympus/overhead/internal/geo"
	"github.com/UnknownOlympus/overhead/internal/models"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "overhead",
	Short: "Nearby in-flight aircraft with weather",
	Long: `Serves GET /flights?lat=&lon=, returning airborne flights around the point
enriched with the current weather. Running without a subcommand starts the server.`,
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Load configuration from the environment and serve /flights, /healthz and /metrics.`,
	RunE:  runServe,
}

var bboxCmd = &cobra.Command{
	Use:   "bbox",
	Short: "Print the search box and flight query for a point",
	Long:  `Compute the geodesic bounding box around a point and the flight-search filter built from it. No API key is needed.`,
	RunE:  runBBox,
}

var (
	bboxLat    float64
	bboxLon    float64
	bboxRadius float64
)

func init() {
	bboxCmd.Flags().Float64Var(&bboxLat, "lat", 0, "Latitude of the center point")
	bboxCmd.Flags().Float64Var(&bboxLon, "lon", 0, "Longitude of the center point")
	bboxCmd.Flags().Float64VarP(&bboxRadius, "radius", "r", 5, "Search radius in miles")
	_ = bboxCmd.MarkFlagRequired("lat")
	_ = bboxCmd.MarkFlagRequired("lon")

	rootCmd.AddCommand(serveCmd, bboxCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type bboxOutput struct {
	BoundingBox models.BoundingBox `json:"bounding_box"`
	Query       string             `json:"query"`
}

func runBBox(cmd *cobra.Command, _ []string) error {
	box, err := geo.ComputeBoundingBox(bboxLat, bboxLon, bboxRadius)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(bboxOutput{BoundingBox: box, Query: flights.BuildQuery(box)})
}
