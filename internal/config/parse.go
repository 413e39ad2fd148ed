package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Values may come from the environment as strings or from YAML as numbers,
// so they are normalized through their string form.

func parseInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(fmt.Sprint(v.Get(key)))
	return strconv.Atoi(raw)
}

func parseFloat(v *viper.Viper, key string) (float64, error) {
	raw := strings.TrimSpace(fmt.Sprint(v.Get(key)))
	return strconv.ParseFloat(raw, 64)
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
