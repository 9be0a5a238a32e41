package infrastructure

import (
	"github.com/google/wire"
	"menlo.ai/learning-client/app/domain/navigation"
	"menlo.ai/learning-client/app/infrastructure/apiclient"
	"menlo.ai/learning-client/app/infrastructure/cache"
	"menlo.ai/learning-client/app/infrastructure/inflight"
	"menlo.ai/learning-client/app/infrastructure/kvstore"
)

var InfrastructureProvider = wire.NewSet(
	kvstore.NewDurableStore,
	kvstore.NewEphemeralStore,
	cache.NewCacheManager,
	inflight.NewRegistry,
	apiclient.ProviderSet,
	navigation.NewTracker,
	wire.Bind(new(navigation.Navigator), new(*navigation.Tracker)),
)
