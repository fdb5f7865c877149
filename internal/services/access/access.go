package access

import "galeria/internal/domain/models"

// Decision результат проверки доступа к галерее
type Decision int

const (
	// DecisionOwner галерея открыта владельцу со всеми правами на изменение
	DecisionOwner Decision = iota
	// DecisionVisitor публичная галерея открыта посетителю только на чтение
	DecisionVisitor
	// DecisionAuthRequired аноним запросил приватную галерею, нужен вход
	DecisionAuthRequired
	// DecisionDenied авторизованный пользователь без прав, наружу отдается not found
	DecisionDenied
)

func (d Decision) String() string {
	switch d {
	case DecisionOwner:
		return "owner"
	case DecisionVisitor:
		return "visitor"
	case DecisionAuthRequired:
		return "auth_required"
	case DecisionDenied:
		return "denied"
	}
	return "unknown"
}

// CanView сообщает, дает ли решение доступ на чтение
func (d Decision) CanView() bool {
	return d == DecisionOwner || d == DecisionVisitor
}

// CanEdit сообщает, дает ли решение доступ на изменение
func (d Decision) CanEdit() bool {
	return d == DecisionOwner
}

// Decide принимает решение о доступе пользователя к галерее.
// Отсутствие галереи решается вызывающей стороной до проверки, сюда
// попадает только существующая галерея. Результат нельзя кэшировать:
// is_public меняется между запросами.
//
// Порядок правил:
//  1. владелец всегда получает полный доступ
//  2. публичная галерея открыта любому, включая анонима
//  3. аноним на приватной галерее отправляется на вход
//  4. чужой авторизованный пользователь получает отказ,
//     неотличимый снаружи от несуществующей галереи
func Decide(gallery models.Gallery, user *models.User) Decision {
	if gallery.IsOwnedBy(user) {
		return DecisionOwner
	}

	if gallery.IsPublic {
		return DecisionVisitor
	}

	if user == nil {
		return DecisionAuthRequired
	}

	return DecisionDenied
}
