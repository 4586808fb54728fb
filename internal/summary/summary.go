package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hamed0406/endpointwatch/internal/domain"
	"github.com/hamed0406/endpointwatch/internal/endpoint"
)

const (
	CheckLogs           = "Please check logs for more details!"
	SubjectRuntime      = "Jupiter: Failure in runtime"
	SubjectFailure      = "Jupiter: Failure in checking endpoint"
	SubjectTooFew       = "Jupiter: Too Few Endpoints"
	SubjectLoadError    = "Jupiter endpoints - load error"
	NoResults           = "There are no results! Endpoint file might be empty or Service Checker may not be working correctly. Please check logs and endpoint file to help identify the issue."
	NotEnoughEndpoints  = "Endpoint count is below minimum. There is no need to check or something is wrong with endpoint file."
	ResultsDoNotExist   = "Results do not exist! There is nothing to check. Service Checker may not be working correctly. Please check logs and endpoint file to help identify the issue."
	SuccessMessage      = "All endpoints are good!"
	SkipMessageTemplate = "Notification is skipped at %s"
)

var splitLine = strings.Repeat("-", 80)

// Sanitize turns a run's results into the summary handed to notifiers.
func Sanitize(results *domain.ResultSet, endpoints []endpoint.Spec, validated []domain.ValidatedPath) domain.Summary {
	if results == nil {
		return domain.Summary{Message: ResultsDoNotExist, Subject: SubjectRuntime}
	}

	if results.Empty() {
		msg := fmt.Sprintf("Empty result:\n%s\n%s\nEndpoints:\n%s\n%s\n%s\n\n\n%s",
			indent(results), splitLine, indent(endpoints), splitLine, indent(validated), NoResults)
		return domain.Summary{Message: msg, Subject: SubjectRuntime}
	}

	if n := len(results.Failure); n > 0 {
		parts := make([]string, 0, n)
		for _, r := range results.Failure {
			parts = append(parts, fmt.Sprintf("\tname: %s\n\tpath: %s\n\terror: %s", r.Name, r.Path, r.Err))
		}
		subject := SubjectFailure + "s"
		if n == 1 {
			subject = SubjectFailure + " - " + results.Failure[0].Name
		}
		return domain.Summary{
			Message: strings.Join(parts, "\n\n") + "\n\n\n" + CheckLogs,
			Subject: subject,
		}
	}

	return domain.Summary{Message: SuccessMessage, Success: true}
}

// FailureLines renders one line per failure record.
func FailureLines(results *domain.ResultSet) []string {
	if results == nil {
		return nil
	}
	out := make([]string, 0, len(results.Failure))
	for _, r := range results.Failure {
		out = append(out, fmt.Sprintf("%s (%s): %s", r.Name, r.Path, r.Err))
	}
	return out
}

func indent(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
