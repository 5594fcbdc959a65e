package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует терминал для команд клиента
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	// ReadSecret читает значение без отображения на экране
	ReadSecret(prompt string) (string, error)
}
