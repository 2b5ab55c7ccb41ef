package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/modeadvisor/pkg/availability"
	"github.com/travigo/modeadvisor/pkg/conditions"
	"github.com/travigo/modeadvisor/pkg/config"
	"github.com/travigo/modeadvisor/pkg/ctdf"
	"github.com/travigo/modeadvisor/pkg/geocoder"
	"github.com/travigo/modeadvisor/pkg/predictor"
	"github.com/travigo/modeadvisor/pkg/routing"
	"github.com/travigo/modeadvisor/pkg/stations"
)

var (
	majestic       = ctdf.Location{Latitude: 12.9789, Longitude: 77.5715}
	chickpet       = ctdf.Location{Latitude: 12.9700, Longitude: 77.5800}
	hassan         = ctdf.Location{Latitude: 13.0076, Longitude: 76.1026}
	chennaiCentral = ctdf.Location{Latitude: 13.0827, Longitude: 80.2707}
	chennaiEgmore  = ctdf.Location{Latitude: 13.0604, Longitude: 80.2496}
)

type stubResolver struct {
	places map[string]ctdf.Location
}

func (s *stubResolver) ResolvePair(ctx context.Context, sourceText string, destinationText string) (ctdf.ResolvedPlace, ctdf.ResolvedPlace, error) {
	source, sourceFound := s.places[sourceText]
	destination, destinationFound := s.places[destinationText]

	if !sourceFound || !destinationFound {
		return ctdf.ResolvedPlace{}, ctdf.ResolvedPlace{}, &geocoder.GeoError{Message: geocoder.NotFoundMessage}
	}

	return ctdf.ResolvedPlace{Location: source, Label: sourceText}, ctdf.ResolvedPlace{Location: destination, Label: destinationText}, nil
}

type stubRouter struct {
	route *ctdf.RouteResult
	err   error

	mutex sync.Mutex
	calls int
}

func (s *stubRouter) Route(ctx context.Context, source ctdf.Location, destination ctdf.Location) (*ctdf.RouteResult, error) {
	s.mutex.Lock()
	s.calls++
	s.mutex.Unlock()

	return s.route, s.err
}

type recordingObserver struct {
	advice []*ctdf.TripAdvice
	errors []error
}

func (r *recordingObserver) Observe(ctx context.Context, query ctdf.TripQuery, advice *ctdf.TripAdvice, err error) {
	r.advice = append(r.advice, advice)
	r.errors = append(r.errors, err)
}

func peakHour() time.Time {
	kolkata, _ := time.LoadLocation("Asia/Kolkata")

	return time.Date(2025, 3, 4, 9, 0, 0, 0, kolkata)
}

func newTestAdvisor(router routing.Router) (*Advisor, *recordingObserver) {
	advisorConfig := config.Default()
	observer := &recordingObserver{}

	return &Advisor{
		Config: advisorConfig,
		Places: &stubResolver{places: map[string]ctdf.Location{
			"Majestic":        majestic,
			"Chickpet":        chickpet,
			"Hassan":          hassan,
			"Chennai Central": chennaiCentral,
			"Egmore":          chennaiEgmore,
		}},
		Router:       router,
		Availability: availability.NewEngine(advisorConfig, stations.Default()),
		Conditions:   conditions.NewStaticProvider(advisorConfig),
		Predictor:    predictor.NewHeuristicPredictor(advisorConfig.Predictor),
		Observers:    []Observer{observer},
		Now:          peakHour,
	}, observer
}

func cityRoute() *ctdf.RouteResult {
	return &ctdf.RouteResult{
		DistanceKm:  5,
		DurationMin: 18,
		Polyline:    []ctdf.Location{majestic, {Latitude: 12.9750, Longitude: 77.5760}, chickpet},
	}
}

func TestShortCityTrip(t *testing.T) {
	router := &stubRouter{route: cityRoute()}
	advisor, observer := newTestAdvisor(router)

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: " Majestic ", Destination: "Chickpet"})
	require.NoError(t, err)

	assert.Equal(t, ctdf.FeaturePublic, advice.Feature)
	assert.Equal(t, []ctdf.ModeRow{
		{
			Mode:              ctdf.TransportTypeBus,
			TrafficIndex:      40,
			PredictedDelayMin: 40,
			TotalTimeMin:      58,
			Fare:              17.5,
			DelayNote:         "~40.0 min delay",
		},
		{
			Mode:              ctdf.TransportTypeMetro,
			TrafficIndex:      8,
			PredictedDelayMin: 3.4,
			TotalTimeMin:      11.37,
			Fare:              22.75,
			DelayNote:         "~3.4 min delay",
		},
	}, advice.Rows)

	assert.Equal(t, []ctdf.Suggestion{
		{
			Type:   ctdf.SuggestionTypeWalk,
			Title:  "Walkable distance",
			Detail: "~1.82 km · ~24 min",
			Note:   "Good option for nearby places.",
		},
	}, advice.Suggestions)

	assert.Equal(t, 5.0, advice.DistanceKm)
	require.NotNil(t, advice.RoadKm)
	assert.Equal(t, 5.0, *advice.RoadKm)
	assert.Empty(t, advice.NoModesMessage)

	assert.Equal(t, "Source: Majestic", advice.Map.Source.Label)
	assert.Equal(t, "Destination: Chickpet", advice.Map.Destination.Label)
	assert.Equal(t, chickpet.Latitude, advice.Map.Destination.Latitude)
	assert.Len(t, advice.Map.RoadPolyline, 3)
	assert.Equal(t, ctdf.Weather{TemperatureC: 24, HumidityPct: 70}, advice.Weather)

	require.Len(t, observer.advice, 1)
	assert.Same(t, advice, observer.advice[0])
	assert.NoError(t, observer.errors[0])
}

func TestUnresolvedDestination(t *testing.T) {
	router := &stubRouter{route: cityRoute()}
	advisor, observer := newTestAdvisor(router)

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Atlantis", Feature: ctdf.FeatureCab})
	assert.Nil(t, advice)

	var geoError *geocoder.GeoError
	require.ErrorAs(t, err, &geoError)
	assert.Equal(t, geocoder.NotFoundMessage, geoError.Message)

	assert.Equal(t, 0, router.calls)

	require.Len(t, observer.errors, 1)
	assert.Nil(t, observer.advice[0])
	assert.ErrorAs(t, observer.errors[0], &geoError)
}

func TestNoRouteSuppressesPublicModes(t *testing.T) {
	router := &stubRouter{err: &routing.RouteError{Reason: routing.NoRouteReason, Err: routing.ErrNoRoute}}
	advisor, observer := newTestAdvisor(router)

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Hassan"})
	require.NoError(t, err)

	assert.Empty(t, advice.Rows)
	assert.NotNil(t, advice.Rows)
	assert.Equal(t, noPublicModesMessage, advice.NoModesMessage)

	// cab needs a road route and walking is only offered on distance without public rows
	assert.Empty(t, advice.Suggestions)

	assert.Nil(t, advice.RoadKm)
	assert.Equal(t, 159.18, advice.DistanceKm)
	assert.Empty(t, advice.Map.RoadPolyline)
	assert.NotNil(t, advice.Map.RoadPolyline)

	assert.Len(t, observer.advice, 1)
}

func TestCabOfferedWithoutPublicModes(t *testing.T) {
	router := &stubRouter{route: &ctdf.RouteResult{DistanceKm: 4.2, DurationMin: 15}}
	advisor, _ := newTestAdvisor(router)

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Chennai Central", Destination: "Egmore"})
	require.NoError(t, err)

	assert.Empty(t, advice.Rows)
	assert.Equal(t, noPublicModesMessage, advice.NoModesMessage)
	assert.Equal(t, []ctdf.Suggestion{
		{
			Type:   ctdf.SuggestionTypeCab,
			Title:  "Nearby — Cab could save time",
			Detail: "4.2 km · ETA ~49 min",
			Note:   "Est. fare ₹115.6",
		},
	}, advice.Suggestions)
}

func TestCabOfferedWhenFaster(t *testing.T) {
	router := &stubRouter{route: cityRoute()}
	advisor, _ := newTestAdvisor(router)

	// a predictor that only penalises public modes
	trained, err := predictor.NewTrainedPredictor(predictor.Artifact{
		Name:       "public-penalty",
		Expression: "mode_code == 4 ? 0.0 : 60.0",
	}, advisor.Config.Predictor)
	require.NoError(t, err)
	advisor.Predictor = trained

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Chickpet"})
	require.NoError(t, err)

	require.Len(t, advice.Suggestions, 2)
	assert.Equal(t, ctdf.SuggestionTypeWalk, advice.Suggestions[0].Type)
	assert.Equal(t, ctdf.SuggestionTypeCab, advice.Suggestions[1].Type)
	assert.Equal(t, "5.0 km · ETA ~18 min", advice.Suggestions[1].Detail)
	assert.Equal(t, "Est. fare ₹110.0", advice.Suggestions[1].Note)
}

func TestPredictorFaultFallsBackPerMode(t *testing.T) {
	router := &stubRouter{route: cityRoute()}
	advisor, _ := newTestAdvisor(router)

	// metro divides by zero
	trained, err := predictor.NewTrainedPredictor(predictor.Artifact{
		Name:       "fragile",
		Expression: "1 / (mode_code - 2)",
	}, advisor.Config.Predictor)
	require.NoError(t, err)
	advisor.Predictor = trained

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Chickpet"})
	require.NoError(t, err)

	require.Len(t, advice.Rows, 2)

	assert.Equal(t, ctdf.TransportTypeBus, advice.Rows[0].Mode)
	assert.Equal(t, 0.0, advice.Rows[0].PredictedDelayMin)
	assert.Equal(t, 18.0, advice.Rows[0].TotalTimeMin)
	assert.Equal(t, "No significant delay", advice.Rows[0].DelayNote)

	heuristic := predictor.NewHeuristicPredictor(advisor.Config.Predictor)
	expected := heuristic.PredictDelayMinutes(predictor.Features{DistanceKm: 4.25, TrafficIndex: 8, HumidityPct: 70, TemperatureC: 24, Mode: ctdf.TransportTypeMetro})

	assert.Equal(t, ctdf.TransportTypeMetro, advice.Rows[1].Mode)
	assert.InDelta(t, expected, advice.Rows[1].PredictedDelayMin, 0.005)
	assert.Equal(t, 3.4, advice.Rows[1].PredictedDelayMin)
}

func TestAdviceIsIdempotent(t *testing.T) {
	router := &stubRouter{route: cityRoute()}
	advisor, _ := newTestAdvisor(router)

	query := ctdf.TripQuery{Source: "Majestic", Destination: "Chickpet", Feature: ctdf.FeaturePublic}

	first, err := advisor.Advise(context.Background(), query)
	require.NoError(t, err)
	second, err := advisor.Advise(context.Background(), query)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
}

func TestCabFeature(t *testing.T) {
	router := &stubRouter{route: cityRoute()}
	advisor, _ := newTestAdvisor(router)

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Chickpet", Feature: ctdf.FeatureCab})
	require.NoError(t, err)

	assert.Equal(t, []ctdf.ModeRow{
		{
			Mode:              ctdf.TransportTypeCab,
			TrafficIndex:      40,
			PredictedDelayMin: 40,
			TotalTimeMin:      58,
			Fare:              130,
			DelayNote:         "~40.0 min delay",
		},
	}, advice.Rows)
	assert.Empty(t, advice.Suggestions)
	assert.Empty(t, advice.NoModesMessage)
	assert.Equal(t, 5.0, advice.DistanceKm)
}

func TestCabFeatureWithoutRoute(t *testing.T) {
	router := &stubRouter{err: &routing.RouteError{Reason: routing.MissingKeyReason, Err: routing.ErrMissingKey}}
	advisor, _ := newTestAdvisor(router)

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Chickpet", Feature: ctdf.FeatureCab})
	require.NoError(t, err)

	assert.Empty(t, advice.Rows)
	assert.Equal(t, noCabRouteMessage, advice.NoModesMessage)
	assert.Equal(t, 1.35, advice.DistanceKm)
	assert.Nil(t, advice.RoadKm)
}

func TestWalkFeature(t *testing.T) {
	router := &stubRouter{route: cityRoute()}
	advisor, _ := newTestAdvisor(router)

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Chickpet", Feature: ctdf.FeatureWalk})
	require.NoError(t, err)

	assert.Equal(t, 0, router.calls)
	assert.Equal(t, []ctdf.ModeRow{
		{
			Mode:              ctdf.TransportTypeWalk,
			TrafficIndex:      4,
			PredictedDelayMin: 0.05,
			TotalTimeMin:      24.38,
			Fare:              0,
			DelayNote:         "Walk time varies by signals & footpaths",
		},
	}, advice.Rows)
	assert.Equal(t, 1.83, advice.DistanceKm)
	assert.Empty(t, advice.Map.RoadPolyline)
}

func TestWalkFeatureFloorsTotalTime(t *testing.T) {
	advisor, _ := newTestAdvisor(&stubRouter{})

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Majestic", Feature: ctdf.FeatureWalk})
	require.NoError(t, err)

	require.Len(t, advice.Rows, 1)
	assert.Equal(t, 1.0, advice.Rows[0].TotalTimeMin)
}

func TestWalkFeaturePathCap(t *testing.T) {
	advisor, _ := newTestAdvisor(&stubRouter{})

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Hassan", Feature: ctdf.FeatureWalk})
	require.NoError(t, err)

	assert.Equal(t, 50.0, advice.DistanceKm)
	assert.InDelta(t, 50/4.5*60, advice.Rows[0].TotalTimeMin, 5)
}

func TestInvalidQueries(t *testing.T) {
	advisor, observer := newTestAdvisor(&stubRouter{})

	_, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "  ", Destination: "Chickpet"})
	assert.ErrorIs(t, err, ErrMissingPlaces)

	_, err = advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Chickpet", Feature: "ferry"})
	assert.ErrorIs(t, err, ErrUnknownFeature)

	assert.Empty(t, observer.advice)
}

func TestRowsNeverUnderOneMinute(t *testing.T) {
	advisor, _ := newTestAdvisor(&stubRouter{})

	modes := []ctdf.TransportType{ctdf.TransportTypeBus, ctdf.TransportTypeMetro, ctdf.TransportTypeTrain}

	for _, roadKm := range []float64{0, 0.01, 1, 5, 40, 120, 800} {
		for _, duration := range []float64{0, 0.2, 30} {
			trip := tripContext{
				Route:       &ctdf.RouteResult{DistanceKm: roadKm, DurationMin: duration},
				StraightKm:  roadKm,
				BaseTraffic: 0,
			}

			for _, row := range advisor.AssembleRows(modes, trip) {
				assert.GreaterOrEqual(t, row.TotalTimeMin, 1.0, "mode %s road %f", row.Mode, roadKm)
			}
		}
	}
}

func TestAssembleRowsWithoutRoute(t *testing.T) {
	advisor, _ := newTestAdvisor(&stubRouter{})

	rows := advisor.AssembleRows([]ctdf.TransportType{ctdf.TransportTypeBus, ctdf.TransportTypeTrain}, tripContext{StraightKm: 150, BaseTraffic: 28})

	require.Len(t, rows, 1)
	assert.Equal(t, ctdf.TransportTypeTrain, rows[0].Mode)
	assert.Equal(t, 5.6, rows[0].TrafficIndex)
	assert.Equal(t, 278.0, rows[0].Fare)
}

func TestRouterErrorsAreNotTerminal(t *testing.T) {
	router := &stubRouter{err: errors.New("dial tcp: i/o timeout")}
	advisor, _ := newTestAdvisor(router)

	advice, err := advisor.Advise(context.Background(), ctdf.TripQuery{Source: "Majestic", Destination: "Chickpet"})
	require.NoError(t, err)

	assert.Equal(t, 1, router.calls)
	assert.Empty(t, advice.Rows)
	require.Len(t, advice.Suggestions, 1)
	assert.Equal(t, ctdf.SuggestionTypeWalk, advice.Suggestions[0].Type)
}
