package web

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	Id       string
	FullName string
}

// authenticated requires HTTP basic auth once any web user is configured.
func (env *Environ) authenticated(handler http.HandlerFunc) http.HandlerFunc {
	return func(rw http.ResponseWriter, request *http.Request) {
		if len(env.cfg.Users) == 0 {
			handler(rw, request)
			return
		}
		userId, password, ok := request.BasicAuth()
		if !ok || env.checkPassword(userId, password) == nil {
			rw.Header().Set("WWW-Authenticate", `Basic realm="`+env.cfg.Realm+`"`)
			env.error(rw, request, nil, "authentication required", http.StatusUnauthorized)
			return
		}
		handler(rw, request)
	}
}

func (env *Environ) checkPassword(userId string, password string) *User {
	for _, user := range env.cfg.Users {
		if user.Id != userId {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
			env.logger.Warn().Err(err).Msg("authentication failure")
			return nil
		}
		return &User{
			Id:       userId,
			FullName: user.FullName,
		}
	}
	env.logger.Warn().Str("id", userId).Msg("user not found")
	return nil
}
