package initchecker

import (
	"reflect"

	log "github.com/sirupsen/logrus"
)

// CheckInit паникует, если зависимость обработчика не инициализирована.
// Аргументы передаются парами: название, значение.
func CheckInit(pairs ...any) {
	if len(pairs)%2 != 0 {
		log.Panic("CheckInit: нечетное количество аргументов")
	}
	missing := make([]string, 0)
	for idx := 0; idx < len(pairs); idx += 2 {
		name, ok := pairs[idx].(string)
		if !ok {
			log.Panicf("CheckInit: аргумент %d должен быть названием зависимости", idx)
		}
		if isNil(pairs[idx+1]) {
			missing = append(missing, name)
		}
	}
	if len(missing) != 0 {
		log.WithField("dependencies", missing).Panic("зависимости обработчика не инициализированы")
	}
}

// isNil учитывает nil указатель внутри интерфейса
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
