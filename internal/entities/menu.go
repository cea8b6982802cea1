package entities

// MenuItem - пункт меню консоли. Пустой Permission значит, что пункт видит
// любой авторизованный пользователь.
type MenuItem struct {
	Key        string
	TitleKey   string
	Path       string
	Icon       string
	Permission string
	Children   []MenuItem
}
