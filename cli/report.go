package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/istekapp/istek-sub000/pkg/models"
)

var (
	passText  = color.New(color.FgGreen).SprintFunc()
	failText  = color.New(color.FgRed).SprintFunc()
	errorText = color.New(color.FgYellow).SprintFunc()
)

func statusText(status models.TestStatus) string {
	switch status {
	case models.TestStatusPassed:
		return passText(string(status))
	case models.TestStatusFailed:
		return failText(string(status))
	default:
		return errorText(string(status))
	}
}

// printSummary renders the run outcome as a table plus the details of
// every failing assertion.
func printSummary(summary *models.TestRunSummary) {
	fmt.Printf("\nTest run: %s (%s)\n\n", summary.Name, summary.RunID)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Request", "Method", "Status", "Code", "Time (ms)"})
	for i, result := range summary.Results {
		code := "-"
		if result.ResponseStatus != nil {
			code = strconv.Itoa(*result.ResponseStatus)
		}
		elapsed := "-"
		if result.ResponseTimeMs != nil {
			elapsed = strconv.FormatInt(*result.ResponseTimeMs, 10)
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			result.Name,
			result.Method,
			statusText(result.Status),
			code,
			elapsed,
		})
	}
	table.Render()

	for _, result := range summary.Results {
		if result.Status == models.TestStatusPassed {
			continue
		}
		fmt.Printf("\n%s %s\n", failText("✗"), result.Name)
		if result.Error != "" {
			fmt.Printf("    %s\n", result.Error)
		}
		for _, assertion := range result.Assertions {
			if assertion.Passed {
				continue
			}
			fmt.Printf("    %s\n      expected: %s\n      actual:   %s\n",
				assertion.Name, assertion.Expected, assertion.Actual)
		}
	}

	fmt.Printf("\nTotal: %d   Passed: %s   Failed: %s   Errors: %s   Duration: %dms\n\n",
		summary.Total,
		passText(strconv.Itoa(summary.Passed)),
		failText(strconv.Itoa(summary.Failed)),
		errorText(strconv.Itoa(summary.Errors)),
		summary.DurationMs,
	)
}
