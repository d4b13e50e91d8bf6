package memcache_fx

import (
	"go.uber.org/fx"

	mem "freiplatz/pkg/memcache"
)

var Module = fx.Provide(provideCarrierAccessStore)

func provideCarrierAccessStore() mem.CarrierAccessStore {
	return mem.NewCarrierAccess()
}
