package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/conorfennell/namepick/internal/domain"
	"github.com/conorfennell/namepick/internal/session"
)

const help = `y/a accept  n/r refuse  l list accepted  s save  w save and quit  q quit  ? help`

// Run drives a review from line commands read from in until the reviewer
// quits or in is exhausted. Unsaved decisions are dropped on q.
func Run(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, help)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		prompt(sess, out)
		if !scanner.Scan() {
			break
		}

		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch cmd {
		case "":
			continue
		case "?", "h", "help":
			fmt.Fprintln(out, help)
		case "l":
			list(sess, out)
		case "s":
			if err := sess.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "saved")
		case "w":
			if err := sess.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "saved")
			return nil
		case "q":
			if sess.Dirty() {
				fmt.Fprintln(out, "quitting without saving")
			}
			return nil
		default:
			o, err := domain.ParseOutcome(cmd)
			if err != nil {
				fmt.Fprintf(out, "unknown command %q (? for help)\n", cmd)
				continue
			}
			if _, ok := sess.Current(); !ok {
				fmt.Fprintln(out, "nothing left to review")
				continue
			}
			decided, err := sess.Decide(o)
			if err != nil {
				return err
			}
			mark := "✖"
			if o == domain.Accept {
				mark = "✔"
			}
			fmt.Fprintf(out, "%s %s\n", mark, decided)
		}
	}
	return scanner.Err()
}

func prompt(sess *session.Session, out io.Writer) {
	p, ok := sess.Current()
	if !ok {
		fmt.Fprintln(out, "nothing left to review")
		fmt.Fprint(out, "> ")
		return
	}
	fmt.Fprintf(out, "[%d] %s > ", sess.Remaining(), p)
}

func list(sess *session.Session, out io.Writer) {
	accepted := sess.Accepted()
	if len(accepted) == 0 {
		fmt.Fprintln(out, "no accepted names yet")
		return
	}
	names := make([]string, len(accepted))
	for i, p := range accepted {
		names[i] = p.String()
	}
	fmt.Fprintln(out, strings.Join(names, " "))
}
