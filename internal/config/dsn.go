package config

import (
	"net"
	neturl "net/url"
	"strconv"
	"strings"
)

// URIValue returns the mongo connection string, building one from host parts when uri is unset.
func (c MongoConfig) URIValue() string {
	if c.URI != "" {
		return c.URI
	}
	u := &neturl.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/",
	}
	if c.Username != "" {
		u.User = neturl.UserPassword(c.Username, c.Password)
	}
	return u.String()
}

// URLValue returns the redis URL, or "" when redis is not configured.
func (c RedisConfig) URLValue() string {
	if c.URL != "" {
		return c.URL
	}
	host := strings.TrimSpace(c.Host)
	if host == "" {
		return ""
	}
	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(c.Port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if c.Password != "" {
		u.User = neturl.UserPassword("", c.Password)
	}
	return u.String()
}
