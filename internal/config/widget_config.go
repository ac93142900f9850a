package config

import (
	"strconv"
	"time"
)

// WidgetConfig supplies the startup flags and collaborator endpoints the
// session widget boots from.
type WidgetConfig interface {
	GetAppURL() string
	GetAppID() string
	GetIdentityProviderURL() string
	GetExchangeURL() string
	GetStartupTime() float64
}

const (
	appURLVar      = "APP_URL"
	appIDVar       = "APP_ID"
	idpURLVar      = "IDP_BASE_URL"
	exchangeURLVar = "EXCHANGE_URL"
	startupTimeVar = "STARTUP_TIME"
)

type Widget struct{}

var _ WidgetConfig = Widget{}

// GetAppURL returns the absolute URL the widget is embedded under,
// reservation id query parameter included if the identity provider just
// redirected back.
func (Widget) GetAppURL() string {
	return GetEnv(appURLVar, "http://localhost:8080/")
}

func (Widget) GetAppID() string {
	return GetEnv(appIDVar, "auth-widget")
}

// GetIdentityProviderURL returns the fixed base of the identity provider;
// the login and logout endpoints hang off it.
func (Widget) GetIdentityProviderURL() string {
	return GetEnv(idpURLVar, "http://localhost:9090/idp")
}

func (Widget) GetExchangeURL() string {
	return GetEnv(exchangeURLVar, "http://localhost:9090/idp/exchange")
}

// GetStartupTime returns the reference clock (epoch seconds) the widget
// evaluates token validity against. Overridable for reproducible runs.
func (Widget) GetStartupTime() float64 {
	raw := GetEnv(startupTimeVar, "")
	if raw != "" {
		if t, err := strconv.ParseFloat(raw, 64); err == nil {
			return t
		}
	}
	return float64(time.Now().Unix())
}
