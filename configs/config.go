package config

import (
	"os"
	"strings"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

// Sanitizer is the allow-list applied to authored content before it is
// stored or rendered. Tags and attributes outside the list are stripped.
type Sanitizer struct {
	AllowedTags       []string
	AllowedAttributes map[string][]string
}

type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	PostgresURI        string
	RedisURI           string
	FrontendURL        string
	R2                 R2
	SecretKey          string
	CookieName         string
	ContactEmail       string
	SenderEmail        string
	ResendAPIKey       string
	Sanitizer          Sanitizer
}

func LoadConfig() *Config {
	return &Config{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:3000/login/callback"),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		RedisURI:           getEnv("REDIS_URI", "127.0.0.1:6379"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey:    getEnv("SECRET_KEY", ""),
		CookieName:   getEnv("COOKIE_NAME", "blog_session"),
		ContactEmail: getEnv("CONTACT_EMAIL", "contato@mentetech.com.br"),
		SenderEmail:  getEnv("SENDER_EMAIL", "Mente Tech <noreply@mentetech.com.br>"),
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		Sanitizer: Sanitizer{
			AllowedTags:       getEnvList("SANITIZER_ALLOWED_TAGS", defaultAllowedTags),
			AllowedAttributes: getEnvAttrMap("SANITIZER_ALLOWED_ATTRIBUTES", defaultAllowedAttributes),
		},
	}
}

var defaultAllowedTags = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "br", "hr", "blockquote", "pre", "code",
	"strong", "em", "b", "i", "u", "s", "del",
	"a", "img", "figure", "figcaption",
	"ul", "ol", "li",
	"table", "thead", "tbody", "tr", "th", "td",
	"span", "div",
}

var defaultAllowedAttributes = map[string][]string{
	"a":    {"href", "title", "target", "rel"},
	"img":  {"src", "alt", "title", "width", "height"},
	"code": {"class"},
	"pre":  {"class"},
	"span": {"class"},
	"div":  {"class"},
	"th":   {"colspan", "rowspan", "align"},
	"td":   {"colspan", "rowspan", "align"},
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// getEnvAttrMap parses "a=href|title,img=src|alt" into a tag→attributes map.
func getEnvAttrMap(key string, defaultValue map[string][]string) map[string][]string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	attrs := make(map[string][]string)
	for _, entry := range strings.Split(value, ",") {
		tag, list, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok || tag == "" {
			continue
		}
		for _, attr := range strings.Split(list, "|") {
			if attr = strings.TrimSpace(attr); attr != "" {
				attrs[tag] = append(attrs[tag], attr)
			}
		}
	}
	return attrs
}
