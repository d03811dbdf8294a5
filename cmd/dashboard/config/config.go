package config

import (
	"flag"
	"os"
	"time"

	"utm-dashboard/internal/dashboard"
	"utm-dashboard/internal/dashboard/shopify"
)

const (
	serverAddressFlag    = "a"
	serverAddressEnv     = "RUN_ADDRESS"
	serverAddressDefault = "localhost:8080"
	shopDomainFlag       = "s"
	shopDomainEnv        = "SHOP_DOMAIN"
	shopDomainDefault    = ""
	accessTokenFlag      = "t"
	accessTokenEnv       = "SHOPIFY_ACCESS_TOKEN"
	accessTokenDefault   = ""
	apiVersionFlag       = "v"
	apiVersionEnv        = "SHOPIFY_API_VERSION"
	apiVersionDefault    = "2024-01"
	apiKeyFlag           = "k"
	apiKeyEnv            = "DASHBOARD_API_KEY"
	apiKeyDefault        = ""
)

type Config struct {
	Server          dashboard.Config
	Shopify         shopify.Config
	ShutdownTimeout time.Duration
}

func Load() (*Config, error) {
	serverAddress := flag.String(
		serverAddressFlag,
		serverAddressDefault,
		"Server address host:port",
	)

	shopDomain := flag.String(
		shopDomainFlag,
		shopDomainDefault,
		"Store domain, e.g. example.myshopify.com",
	)

	accessToken := flag.String(
		accessTokenFlag,
		accessTokenDefault,
		"Admin API access token",
	)

	apiVersion := flag.String(
		apiVersionFlag,
		apiVersionDefault,
		"Admin API version",
	)

	apiKey := flag.String(
		apiKeyFlag,
		apiKeyDefault,
		"Dashboard API key (empty disables auth)",
	)

	flag.Parse()

	if valStr, ok := os.LookupEnv(serverAddressEnv); ok {
		*serverAddress = valStr
	}

	if valStr, ok := os.LookupEnv(shopDomainEnv); ok {
		*shopDomain = valStr
	}

	if valStr, ok := os.LookupEnv(accessTokenEnv); ok {
		*accessToken = valStr
	}

	if valStr, ok := os.LookupEnv(apiVersionEnv); ok {
		*apiVersion = valStr
	}

	if valStr, ok := os.LookupEnv(apiKeyEnv); ok {
		*apiKey = valStr
	}

	return &Config{
		Server: dashboard.Config{
			ServerAddress:   *serverAddress,
			APIKey:          *apiKey,
			ShutdownTimeout: time.Second * 5,
		},
		Shopify: shopify.Config{
			ShopDomain:  *shopDomain,
			AccessToken: *accessToken,
			APIVersion:  *apiVersion,
		},
		ShutdownTimeout: time.Second * 5,
	}, nil
}
