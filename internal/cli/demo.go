package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/guards/pkg/cart"
	"github.com/mesh-intelligence/guards/pkg/record"
)

func newDemoCmd() *cobra.Command {
	demo := &cobra.Command{
		Use:   "demo",
		Short: "Run a guarded record demonstration",
	}
	demo.AddCommand(
		&cobra.Command{
			Use:   "cart",
			Short: "Computed cart total that ignores direct writes",
			Args:  cobra.NoArgs,
			RunE:  runDemoCart,
		},
		&cobra.Command{
			Use:   "age",
			Short: "Validated numeric age field",
			Args:  cobra.NoArgs,
			RunE:  runDemoAge,
		},
		&cobra.Command{
			Use:   "remove",
			Short: "Selective removal of fields marked removable",
			Args:  cobra.NoArgs,
			RunE:  runDemoRemove,
		},
		&cobra.Command{
			Use:   "binding",
			Short: "Derivations passed as callbacks keep their record",
			Args:  cobra.NoArgs,
			RunE:  runDemoBinding,
		},
	)
	return demo
}

// report prints the outcome of an operation that is allowed to fail.
func report(w io.Writer, label string, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", label, err)
		return
	}
	fmt.Fprintf(w, "%s: ok\n", label)
}

// printField prints name and its current value, or the lookup error.
func printField(w io.Writer, r *record.Record, name string) {
	v, err := r.Get(name)
	if err != nil {
		fmt.Fprintf(w, "get %s: %v\n", name, err)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", name, v)
}

func printRecord(w io.Writer, r *record.Record) error {
	data, err := record.Serialize(r, current.format)
	if err != nil {
		return sysError(fmt.Errorf("serialize: %w", err))
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func runDemoCart(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	c, err := cart.New(current.recordOptions()...)
	if err != nil {
		return sysError(err)
	}
	if _, err := c.Add(500, 2); err != nil {
		return sysError(err)
	}
	rec := c.Record()

	printField(out, rec, cart.FieldTotal)
	report(out, "set total = 83838", rec.Set(cart.FieldTotal, 83838))
	printField(out, rec, cart.FieldTotal)
	return printRecord(out, rec)
}

func runDemoAge(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	rec := record.New(nil, current.recordOptions()...)
	if err := rec.AttachValidated("age", 0, record.All(record.Numeric(), record.Tag("gte=0,lte=150"))); err != nil {
		return sysError(err)
	}

	printField(out, rec, "age")
	report(out, "set age = 26", rec.Set("age", 26))
	printField(out, rec, "age")
	report(out, `set age = "chickenjoy"`, rec.Set("age", "chickenjoy"))
	printField(out, rec, "age")
	return printRecord(out, rec)
}

func runDemoRemove(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	opts := append(current.recordOptions(), record.WithRemovable("r"))
	rec := record.New(map[string]any{"p": 1, "r": 2}, opts...)

	report(out, "remove p", rec.Remove("p"))
	printField(out, rec, "p")
	report(out, "remove r", rec.Remove("r"))
	printField(out, rec, "r")
	return printRecord(out, rec)
}

func runDemoBinding(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	c, err := cart.New(current.recordOptions()...)
	if err != nil {
		return sysError(err)
	}
	if _, err := c.Add(500, 2); err != nil {
		return sysError(err)
	}
	empty, err := cart.New(current.recordOptions()...)
	if err != nil {
		return sysError(err)
	}

	printField(out, c.Record(), cart.FieldTotal)

	callback := cart.TotalCost
	fmt.Fprintf(out, "callback(cart): %v\n", callback(record.ViewOf(c.Record())))
	fmt.Fprintf(out, "callback(empty cart): %v\n", callback(record.ViewOf(empty.Record())))
	return nil
}
