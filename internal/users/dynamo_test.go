package users

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestBuildUpdateExpression_AllFields(t *testing.T) {
	expr, names, values, err := buildUpdateExpression(Patch{
		Name:     strPtr("Lee"),
		Email:    strPtr("lee@b.com"),
		Password: strPtr("$2a$10$hash"),
		Majors:   []string{"전자공학"},
		Grade:    intPtr(4),
		IsActive: boolPtr(false),
		Tags:     []string{"프론트엔드"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SET #name = :name, #email = :email, #password = :password, #majors = :majors, #grade = :grade, #isActive = :isActive, #tags = :tags"
	if expr != want {
		t.Errorf("expression mismatch:\n got: %s\nwant: %s", expr, want)
	}
	if names["#isActive"] != "isActive" {
		t.Errorf("expected #isActive placeholder, got %v", names)
	}

	grade, ok := values[":grade"].(*types.AttributeValueMemberN)
	if !ok || grade.Value != "4" {
		t.Errorf("expected :grade N=4, got %#v", values[":grade"])
	}
	active, ok := values[":isActive"].(*types.AttributeValueMemberBOOL)
	if !ok || active.Value != false {
		t.Errorf("expected :isActive BOOL=false, got %#v", values[":isActive"])
	}
}

func TestBuildUpdateExpression_SkipsAbsentFields(t *testing.T) {
	expr, names, values, err := buildUpdateExpression(Patch{
		Name:  strPtr("Lee"),
		Grade: intPtr(2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if expr != "SET #name = :name, #grade = :grade" {
		t.Errorf("unexpected expression: %s", expr)
	}
	if _, ok := names["#password"]; ok {
		t.Error("absent password must not appear in the expression")
	}
	if _, ok := values[":email"]; ok {
		t.Error("absent email must not appear in the values")
	}
}

func TestBuildUpdateExpression_EmptyTagsClears(t *testing.T) {
	// A non-nil empty tags list is a deliberate clear and must be written.
	expr, _, values, err := buildUpdateExpression(Patch{Tags: []string{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr != "SET #tags = :tags" {
		t.Errorf("unexpected expression: %s", expr)
	}
	if _, ok := values[":tags"]; !ok {
		t.Error("expected :tags value for a clear")
	}
}

func TestBuildUpdateExpression_EmptyPatch(t *testing.T) {
	if _, _, _, err := buildUpdateExpression(Patch{}); err == nil {
		t.Error("expected an error for an empty patch")
	}
}

func TestPatchIsEmpty(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (Patch{Tags: []string{}}).IsEmpty() {
		t.Error("non-nil tags is a clear, not empty")
	}
	if (Patch{Name: strPtr("Kim")}).IsEmpty() {
		t.Error("patch with a name is not empty")
	}
}

func TestNewID(t *testing.T) {
	// Ids are millisecond timestamps nudged backwards by less than a second.
	id := NewID()
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	upper := time.Now().UnixMilli()
	if id > upper || id < upper-2000 {
		t.Errorf("id %d outside expected window around %d", id, upper)
	}
}
