package locationsearch

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/doleances-service/internal/domain"
)

type fakeAreas struct {
	mu    sync.Mutex
	data  map[domain.AdminLevel][]domain.AdminArea
	errs  map[domain.AdminLevel]error
	calls map[domain.AdminLevel]int
	// block, если задан, задерживает ответ до закрытия канала
	block chan struct{}
	// entered получает сигнал при каждом входе в Areas
	entered chan domain.AdminLevel
}

func newFakeAreas(data map[domain.AdminLevel][]domain.AdminArea) *fakeAreas {
	return &fakeAreas{
		data:  data,
		errs:  map[domain.AdminLevel]error{},
		calls: map[domain.AdminLevel]int{},
	}
}

func (f *fakeAreas) Areas(ctx context.Context, level domain.AdminLevel) ([]domain.AdminArea, error) {
	f.mu.Lock()
	f.calls[level]++
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- level
	}
	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[level]; err != nil {
		return nil, err
	}
	return f.data[level], nil
}

func (f *fakeAreas) Calls(level domain.AdminLevel) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[level]
}

type geocodeFunc func(ctx context.Context, query string, opts domain.GeocodeOptions) ([]domain.GeocodeResult, error)

type fakeGeocoder struct {
	fn      geocodeFunc
	calls   atomic.Int32
	mu      sync.Mutex
	queries []string
	opts    []domain.GeocodeOptions
}

func (f *fakeGeocoder) Search(ctx context.Context, query string, opts domain.GeocodeOptions) ([]domain.GeocodeResult, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.opts = append(f.opts, opts)
	f.mu.Unlock()
	if f.fn == nil {
		return nil, nil
	}
	return f.fn(ctx, query, opts)
}

func (f *fakeGeocoder) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func places(prefix string, n int) []domain.GeocodeResult {
	out := make([]domain.GeocodeResult, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.GeocodeResult{
			ID:          int64(1000 + i),
			DisplayName: fmt.Sprintf("%s %d, Madagascar", prefix, i),
			Lat:         "-18.9",
			Lon:         "47.5",
		})
	}
	return out
}

func madagascar() map[domain.AdminLevel][]domain.AdminArea {
	return map[domain.AdminLevel][]domain.AdminArea{
		domain.LevelRegion: {
			{Code: "MG11", Name: "Analamanga"},
			{Code: "MG21", Name: "Vakinankaratra"},
			{Code: "MG31", Name: "Haute Matsiatra"},
		},
		domain.LevelDistrict: {
			{Code: "MG111", Name: "Antananarivo Renivohitra", ParentName: "Analamanga", ParentCode: "MG11"},
			{Code: "MG112", Name: "Antananarivo Atsimondrano", ParentName: "Analamanga", ParentCode: "MG11"},
			{Code: "MG113", Name: "Ambohidratrimo", ParentName: "Analamanga", ParentCode: "MG11"},
			{Code: "MG311", Name: "Fianarantsoa I", ParentName: "Haute Matsiatra", ParentCode: "MG31"},
		},
		domain.LevelCommune: {
			{Code: "MG11101", Name: "Antananarivo Renivohitra", ParentName: "Antananarivo Renivohitra", ParentCode: "MG111", RegionName: "Analamanga"},
			{Code: "MG11201", Name: "Andoharanofotsy", ParentName: "Antananarivo Atsimondrano", ParentCode: "MG112", RegionName: "Analamanga"},
			{Code: "MG11301", Name: "Mahitsy", ParentName: "Ambohidratrimo", ParentCode: "MG113", RegionName: "Analamanga"},
			{Code: "MG11302", Name: "Ambohidratrimo", ParentName: "Ambohidratrimo", ParentCode: "MG113", RegionName: "Analamanga"},
			{Code: "MG31101", Name: "Fianarantsoa", ParentName: "Fianarantsoa I", ParentCode: "MG311", RegionName: "Haute Matsiatra"},
		},
	}
}
