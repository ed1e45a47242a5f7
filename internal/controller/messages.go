// ABOUTME: User-facing messages shown by the controllers
// ABOUTME: Russian strings match the game's web UI

package controller

const (
	MsgLoginFailed      = "Ошибка входа"
	MsgRegisterFailed   = "Ошибка регистрации."
	MsgRegistered       = "Регистрация успешна! Переход на страницу входа."
	MsgPasswordMismatch = "Пароли не совпадают!"
	MsgServerError      = "Ошибка сервера. Попробуйте позже."
	MsgCollected        = "Ресурсы собраны!"
	MsgUpgraded         = "Здание улучшено!"
	MsgUnknownBuilding  = "Указан недопустимый тип здания"
	MsgGenericError     = "Ошибка"
)

// DefaultLoginPath is where registration sends the player when the server names no redirect
const DefaultLoginPath = "/login"

func fallback(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}
