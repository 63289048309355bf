package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/medreminder/internal/locale"
)

const (
	localeContextKey   = "__request_locale"
	languageSessionKey = "language"
)

type languageRequest struct {
	Language string `json:"language"`
}

// LocaleMiddleware resolves the request language and exposes it as Content-Language.
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := a.requestLocale(c)
		c.Header("Content-Language", pref.HTMLLang)
		appendVaryHeader(c, "Accept-Language", "Cookie")
		c.Next()
	}
}

func (a *API) requestLocale(c *gin.Context) locale.Preference {
	if cached, exists := c.Get(localeContextKey); exists {
		if pref, ok := cached.(locale.Preference); ok {
			return pref
		}
	}

	explicit := c.Query("lang")
	if explicit == "" {
		explicit = sessionLanguage(c)
	}
	language := locale.Resolve(explicit, c.GetHeader("Accept-Language"), a.defaultLanguage)
	pref := locale.PreferenceForLanguage(language)
	c.Set(localeContextKey, pref)
	return pref
}

func (a *API) requestLanguage(c *gin.Context) string {
	return a.requestLocale(c).Language
}

func sessionLanguage(c *gin.Context) string {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return ""
	}
	value, _ := sessions.Default(c).Get(languageSessionKey).(string)
	return locale.NormalizeLanguage(value)
}

// GetLanguage 返回当前语言
func (a *API) GetLanguage(c *gin.Context) {
	pref := a.requestLocale(c)
	c.JSON(http.StatusOK, gin.H{"language": pref.Language, "locale": pref.Locale})
}

// SetLanguage 将语言偏好保存到会话
func (a *API) SetLanguage(c *gin.Context) {
	var payload languageRequest
	if !bindJSON(c, &payload, "invalid language payload") {
		return
	}

	language := locale.NormalizeLanguage(payload.Language)
	if language == "" {
		respondError(c, http.StatusBadRequest, locale.Pick(a.requestLanguage(c), "Unsupported language", "Ngôn ngữ không được hỗ trợ"))
		return
	}

	session := sessions.Default(c)
	session.Set(languageSessionKey, language)
	if err := session.Save(); err != nil {
		a.log.Error().Err(err).Msg("save language session")
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	pref := locale.PreferenceForLanguage(language)
	c.JSON(http.StatusOK, gin.H{"language": pref.Language, "locale": pref.Locale})
}

func appendVaryHeader(c *gin.Context, headers ...string) {
	existing := c.Writer.Header().Values("Vary")
	seen := make(map[string]struct{}, len(existing))
	for _, value := range existing {
		seen[http.CanonicalHeaderKey(value)] = struct{}{}
	}
	for _, header := range headers {
		key := http.CanonicalHeaderKey(header)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		c.Writer.Header().Add("Vary", header)
	}
}
