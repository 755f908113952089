// Package console implementa o front end de linha: lê um inteiro (argumento ou
// stdin) e imprime os divisores e os divisores primos.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"divisors-gateway/numbertools"
)

const (
	Prompt         = "Digite um número: "
	InvalidMessage = "Entrada inválida. Informe um inteiro >= 1."
)

// ErrInvalidEntry indica que a mensagem de entrada inválida já foi impressa.
var ErrInvalidEntry = errors.New("invalid entry")

// Run usa args[0] quando presente; senão pergunta em out e lê uma linha de in.
func Run(args []string, in io.Reader, out io.Writer) error {
	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		if _, err := io.WriteString(out, Prompt); err != nil {
			return err
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		token = line
	}

	n, ok := parse(token)
	if !ok {
		if _, err := fmt.Fprintln(out, InvalidMessage); err != nil {
			return err
		}
		return ErrInvalidEntry
	}

	divisors, err := numbertools.Divisors(n)
	if err != nil {
		return err
	}
	primes, err := numbertools.PrimeDivisors(n, true)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "Número de Entrada: %d\n", n)
	fmt.Fprintf(w, "Números divisores: %s\n", join(divisors))
	fmt.Fprintf(w, "Divisores Primos: %s\n", join(primes))
	return w.Flush()
}

// parse aceita inteiros base 10 com sinal opcional e espaços nas bordas.
func parse(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func join(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, " ")
}
