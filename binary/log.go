package binary

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

// provisioning output goes to stderr, stdout belongs to the provisioned tool

func logstep(text string) {
	fmt.Fprintln(
		os.Stderr,
		color.BlueString(" •"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

func logdetail(text string) {
	fmt.Fprintln(
		os.Stderr,
		color.New(color.FgHiBlack).Sprint("   └"),
		color.New(color.FgHiBlack).Sprint(text),
	)
}

func logwarn(text string) {
	fmt.Fprintln(
		os.Stderr,
		color.YellowString("   └"),
		color.YellowString(text),
	)
}

// timed prints the elapsed time once the returned function is called,
// marking it as failed when *err is set by then.
func timed(err *error) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		if *err != nil {
			color.New(color.FgRed).Fprintf(os.Stderr, "     ✘ %s\n", elapsed)
			return
		}
		color.New(color.FgGreen).Fprintf(os.Stderr, "     ✔ %s\n", elapsed)
	}
}
