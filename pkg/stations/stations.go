package stations

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/util"
)

//go:embed default.csv
var defaultCSV []byte

type Station struct {
	Set       string  `csv:"set" json:"set"`
	Name      string  `csv:"name" json:"name"`
	Latitude  float64 `csv:"lat" json:"lat"`
	Longitude float64 `csv:"lon" json:"lon"`
}

func (s Station) Location() ctdf.Location {
	return ctdf.Location{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Catalogue is an immutable collection of named station sets
type Catalogue struct {
	sets map[string][]Station
}

// Load reads the station catalogue from path, or the embedded one when path is empty
func Load(path string) (*Catalogue, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultCSV))
	}

	log.Debug().Str("path", path).Msg("Loading stations file")

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Default returns the embedded catalogue
func Default() *Catalogue {
	catalogue, err := Parse(bytes.NewReader(defaultCSV))
	if err != nil {
		log.Fatal().Err(err).Msg("Embedded stations file is invalid")
	}

	return catalogue
}

func Parse(reader io.Reader) (*Catalogue, error) {
	var records []Station

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	if err := gocsv.UnmarshalCSV(csvReader, &records); err != nil {
		return nil, err
	}

	catalogue := &Catalogue{sets: map[string][]Station{}}

	for i, record := range records {
		if !record.Location().Valid() {
			return nil, fmt.Errorf("station %d (%s) has invalid coordinates %s", i, record.Name, record.Location())
		}

		set := util.NormaliseKey(record.Set)
		catalogue.sets[set] = append(catalogue.sets[set], record)
	}

	return catalogue, nil
}

func (c *Catalogue) Stations(set string) []Station {
	return c.sets[util.NormaliseKey(set)]
}

func (c *Catalogue) Locations(set string) []ctdf.Location {
	locations := []ctdf.Location{}
	for _, station := range c.Stations(set) {
		locations = append(locations, station.Location())
	}

	return locations
}
