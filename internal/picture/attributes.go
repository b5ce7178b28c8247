// Package picture содержит модель описания картинки и логику
// вычисления итоговых параметров рендеринга.
package picture

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrReservedAttribute - в наборе атрибутов вручную задан
// зарезервированный ключ.
var ErrReservedAttribute = errors.New("зарезервированный атрибут задан вручную")

// Зарезервированные ключи атрибутов: их выставляет рендерер,
// вручную задавать их нельзя.
var (
	// ReservedImageKeys - зарезервированные атрибуты тега img.
	ReservedImageKeys = []string{"src", "width", "height"}

	// ReservedLinkKeys - зарезервированные атрибуты тега a.
	ReservedLinkKeys = []string{"href", "target"}
)

// Attributes представляет набор дополнительных HTML-атрибутов.
type Attributes map[string]string

// CheckReserved проверяет, что в наборе нет зарезервированных ключей.
// Сравнение регистронезависимое: HTML-атрибуты не различают регистр.
func (a Attributes) CheckReserved(reserved []string) error {
	if len(a) == 0 {
		return nil
	}

	var found []string
	for key := range a {
		lower := strings.ToLower(key)
		for _, r := range reserved {
			if lower == r {
				found = append(found, key)
			}
		}
	}

	if len(found) > 0 {
		sort.Strings(found)
		return fmt.Errorf("%w: %s", ErrReservedAttribute, strings.Join(found, ", "))
	}

	return nil
}

// SortedKeys возвращает ключи в алфавитном порядке
// для детерминированного вывода.
func (a Attributes) SortedKeys() []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
