package screen

type LoadStatus string

const (
	StatusIdle    LoadStatus = "idle"
	StatusLoading LoadStatus = "loading"
	StatusLoaded  LoadStatus = "loaded"
	StatusError   LoadStatus = "error"
)

// Loadable é o estado de um conteúdo buscado no backend.
// Data só é válido em StatusLoaded; cada carga substitui o snapshot anterior.
type Loadable[T any] struct {
	Status LoadStatus `json:"status"`
	Data   T          `json:"data"`
	Error  string     `json:"error,omitempty"`
}

func Idle[T any]() Loadable[T] {
	return Loadable[T]{Status: StatusIdle}
}

func Loading[T any]() Loadable[T] {
	return Loadable[T]{Status: StatusLoading}
}

func Loaded[T any](data T) Loadable[T] {
	return Loadable[T]{Status: StatusLoaded, Data: data}
}

func Failed[T any](message string) Loadable[T] {
	return Loadable[T]{Status: StatusError, Error: message}
}

func (l Loadable[T]) IsLoading() bool {
	return l.Status == StatusLoading
}
