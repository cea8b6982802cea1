package authz

// Permissions возвращает набор прав роли. Для неизвестной роли набор пуст.
func Permissions(role string) map[string]bool {
	perms := make(map[string]bool)
	for _, p := range rolePermissions[role] {
		perms[p] = true
	}
	return perms
}

// Can проверяет, есть ли у роли право permission. Пустое право доступно любой
// известной роли.
func Can(role, permission string) bool {
	perms, known := rolePermissions[role]
	if !known {
		return false
	}
	if permission == "" {
		return true
	}
	for _, p := range perms {
		if p == Superuser || p == permission {
			return true
		}
	}
	return false
}

// CanAny проверяет, есть ли у роли хотя бы одно из прав.
func CanAny(role string, permissions ...string) bool {
	for _, p := range permissions {
		if Can(role, p) {
			return true
		}
	}
	return false
}
