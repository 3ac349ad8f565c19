package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIDFieldIsSerialized(t *testing.T) {
	records := []Record{
		Role{RoleID: 1}, Person{PersonID: 1}, User{UserID: 1}, Employee{EmployeeID: 1},
		Client{ClientID: 1}, SocialMediaAccount{SocialMediaID: 1}, Brand{BrandID: 1},
		BrandRepresentative{BrandRepID: 1}, Deal{DealID: 1}, Contract{ContractID: 1},
	}
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("marshal %T: %v", rec, err)
		}
		if !strings.Contains(string(raw), `"`+rec.IDField()+`":1`) {
			t.Fatalf("%T missing %s in %s", rec, rec.IDField(), raw)
		}
		if rec.RecordID() != 1 {
			t.Fatalf("%T record id = %d", rec, rec.RecordID())
		}
	}
}

func TestEmployeeEndDateSerializesNull(t *testing.T) {
	raw, err := json.Marshal(Employee{EmployeeID: 2})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"end_date":null`) {
		t.Fatalf("expected explicit null end_date, got %s", raw)
	}
}

func TestSetRecordID(t *testing.T) {
	var c Contract
	c.SetRecordID(9)
	if c.ContractID != 9 {
		t.Fatalf("expected 9, got %d", c.ContractID)
	}
}
