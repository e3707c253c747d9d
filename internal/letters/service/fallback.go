package service

import (
	"strings"
	"text/template"

	lettersdomain "github.com/chatgptnotes/esic-billing/internal/letters/domain"
)

var fallbackTemplates = template.Must(template.New("letters").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`
{{- define "discharge_summary" -}}
DISCHARGE SUMMARY

Patient Name : {{.Patient.Name}}
{{- if .Patient.Age}}
Age / Sex    : {{.Patient.Age}}{{if .Patient.Sex}} / {{.Patient.Sex}}{{end}}
{{- end}}
{{- if .Patient.ClaimID}}
Claim ID     : {{.Patient.ClaimID}}
{{- end}}

Diagnosis    : {{join .Diagnoses "; "}}
{{- if .Surgeries}}
Procedure(s) : {{join .Surgeries "; "}}
{{- end}}

The patient was admitted, evaluated and managed as per standard protocol.
The hospital course was uneventful. The patient is being discharged in a
stable condition with advice for follow-up in the outpatient department.
{{- if .Extra}}

Notes: {{.Extra}}
{{- end}}
{{- end -}}

{{- define "approval_letter" -}}
To,
The Medical Officer In-Charge,
ESIC

Subject: Request for treatment approval{{if .Patient.ClaimID}} (Claim ID: {{.Patient.ClaimID}}){{end}}

Respected Sir/Madam,

This is to request approval for the treatment of {{.Patient.Name}}
{{- if .Patient.Age}}, aged {{.Patient.Age}}{{end}}, diagnosed with
{{join .Diagnoses "; "}}.
{{- if .Surgeries}}
The planned procedure(s): {{join .Surgeries "; "}}.
{{- end}}

Kindly accord the necessary sanction at the earliest.
{{- if .Extra}}

Notes: {{.Extra}}
{{- end}}

Thanking you,
Treating Physician
{{- end -}}

{{- define "ot_notes" -}}
OPERATION THEATRE NOTES

Patient Name : {{.Patient.Name}}
{{- if .Patient.ClaimID}}
Claim ID     : {{.Patient.ClaimID}}
{{- end}}
Diagnosis    : {{join .Diagnoses "; "}}
Procedure(s) : {{join .Surgeries "; "}}

Anaesthesia, positioning, and asepsis as per protocol. The procedure was
completed without intraoperative complications. Counts verified. Patient
shifted to recovery in a stable condition.
{{- if .Extra}}

Notes: {{.Extra}}
{{- end}}
{{- end -}}
`))

func renderFallback(req lettersdomain.GenerateRequest) (string, error) {
	var b strings.Builder
	if err := fallbackTemplates.ExecuteTemplate(&b, string(req.Kind), req); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()) + "\n", nil
}
