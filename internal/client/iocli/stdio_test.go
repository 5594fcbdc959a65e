package iocli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestPrintlnAndPrintf(t *testing.T) {
	var out bytes.Buffer
	stdio := &Stdio{out: &out}

	stdio.Println("hello", "world")
	stdio.Printf("test %d %s", 1, "abc")

	assert.Equal(t, "hello world\ntest 1 abc", out.String())
}

// pipeStdio создает Stdio, читающий из pipe вместо os.Stdin
func pipeStdio(t *testing.T, input string) (*Stdio, *bytes.Buffer) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	// Пишем в pipe, имитируя ввод пользователя
	go func() {
		_, _ = w.Write([]byte(input))
		_ = w.Close()
	}()

	var out bytes.Buffer
	return newStdio(r, &out), &out
}

func TestReadInput(t *testing.T) {
	stdio, out := pipeStdio(t, "  user input \nsecond\n")

	result, err := stdio.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "user input", result)
	assert.Equal(t, "Prompt: ", out.String())

	result, err = stdio.ReadInput("")
	require.NoError(t, err)
	assert.Equal(t, "second", result)
}

func TestReadInput_LastLineWithoutNewline(t *testing.T) {
	stdio, _ := pipeStdio(t, "abcd123456")

	result, err := stdio.ReadInput("")
	require.NoError(t, err)
	assert.Equal(t, "abcd123456", result)

	_, err = stdio.ReadInput("")
	assert.Error(t, err, "EOF expected")
}

// Pipe не является терминалом: ключ читается как обычная строка
func TestReadSecret_NotTerminal(t *testing.T) {
	stdio, _ := pipeStdio(t, "ABCD123456\n")

	result, err := stdio.ReadSecret("License key: ")
	require.NoError(t, err)
	assert.Equal(t, "ABCD123456", result)
}
