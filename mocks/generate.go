package mocks

//go:generate mockgen -destination=./mock_price_source.go -package=mocks github.com/rxtech-lab/argo-formula/internal/workspace PriceSource
//go:generate mockgen -destination=./mock_cache_observer.go -package=mocks github.com/rxtech-lab/argo-formula/internal/formula CacheObserver
