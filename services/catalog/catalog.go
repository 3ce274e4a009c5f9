// Package catalog exposes the read-only reference feed of service offerings
// and providers. The engine consumes it through the Feed interface so tests
// can inject fixtures; the static implementation is seeded with the salon's
// default catalog.
package catalog

import "github.com/vvladislovv/buitifal/models"

// Feed lists the salon's offerings and providers. Implementations are
// read-only from the engine's point of view.
type Feed interface {
	ListServices() []models.ServiceOffering
	ListProviders() []models.Provider
	ServiceByID(id string) (*models.ServiceOffering, bool)
	ProviderByID(id string) (*models.Provider, bool)
	// ProvidersByCategory returns providers whose category set contains the
	// given category, in catalog order.
	ProvidersByCategory(category string) []models.Provider
}

// StaticFeed is an in-memory Feed.
type StaticFeed struct {
	services  []models.ServiceOffering
	providers []models.Provider
}

var _ Feed = (*StaticFeed)(nil)

func NewStaticFeed(services []models.ServiceOffering, providers []models.Provider) *StaticFeed {
	return &StaticFeed{services: services, providers: providers}
}

func (f *StaticFeed) ListServices() []models.ServiceOffering {
	out := make([]models.ServiceOffering, len(f.services))
	copy(out, f.services)
	return out
}

func (f *StaticFeed) ListProviders() []models.Provider {
	out := make([]models.Provider, len(f.providers))
	copy(out, f.providers)
	return out
}

func (f *StaticFeed) ServiceByID(id string) (*models.ServiceOffering, bool) {
	for _, s := range f.services {
		if s.ID == id {
			svc := s
			return &svc, true
		}
	}
	return nil, false
}

func (f *StaticFeed) ProviderByID(id string) (*models.Provider, bool) {
	for _, p := range f.providers {
		if p.ID == id {
			prov := p
			return &prov, true
		}
	}
	return nil, false
}

func (f *StaticFeed) ProvidersByCategory(category string) []models.Provider {
	var out []models.Provider
	for _, p := range f.providers {
		if p.Covers(category) {
			out = append(out, p)
		}
	}
	return out
}
