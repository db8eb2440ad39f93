package protocol

import (
	"errors"
	"testing"
)

func TestParseRequest_Valid(t *testing.T) {
	req, err := ParseRequest("1,2024-03-01,Outpatient,CONS100\n")
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	want := Request{PatientID: 1, VisitDate: "2024-03-01", PatientType: "Outpatient", ServiceCode: "CONS100"}
	if req != want {
		t.Errorf("got %+v, want %+v", req, want)
	}
}

func TestParseRequest_Canonicalizes(t *testing.T) {
	req, err := ParseRequest(" 42 , 2024-12-25 , EMERGENCY , mri700 ")
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.PatientType != "Emergency" {
		t.Errorf("patient type: got %q, want Emergency", req.PatientType)
	}
	if req.ServiceCode != "MRI700" {
		t.Errorf("service code: got %q, want MRI700", req.ServiceCode)
	}
	if req.PatientID != 42 || req.VisitDate != "2024-12-25" {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestParseRequest_RoundTrip(t *testing.T) {
	orig := Request{PatientID: 7, VisitDate: "2024-06-15", PatientType: "Inpatient", ServiceCode: "LAB210"}
	got, err := ParseRequest(orig.Encode())
	if err != nil {
		t.Fatalf("ParseRequest(Encode()): %v", err)
	}
	if got != orig {
		t.Errorf("round trip: got %+v, want %+v", got, orig)
	}
}

func TestParseRequest_Malformed(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"empty line", ""},
		{"blank line", "   \r\n"},
		{"too few fields", "1,2024-03-01,Outpatient"},
		{"too many fields", "1,2024-03-01,Outpatient,CONS100,extra"},
		{"non-numeric id", "abc,2024-03-01,Outpatient,CONS100"},
		{"zero id", "0,2024-03-01,Outpatient,CONS100"},
		{"negative id", "-5,2024-03-01,Outpatient,CONS100"},
		{"bad date", "1,03/01/2024,Outpatient,CONS100"},
		{"impossible date", "1,2023-02-29,Outpatient,CONS100"},
		{"unknown patient type", "1,2024-03-01,Daypatient,CONS100"},
		{"unknown service code", "1,2024-03-01,Outpatient,XRAY999"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRequest(tc.line)
			if err == nil {
				t.Fatalf("expected error for %q", tc.line)
			}
			var merr *MalformedRequestError
			if !errors.As(err, &merr) {
				t.Errorf("expected MalformedRequestError, got %T: %v", err, err)
			}
		})
	}
}
