package validate_test

import (
	"testing"

	"github.com/aldeanavidad/tienda/pkg/validate"
)

type productInput struct {
	Name     string  `json:"nombre"    validate:"required,max=255"`
	Price    float64 `json:"precio"    validate:"required,numeric,gte=0"`
	Category string  `json:"categoria" validate:"nullable,max=100"`
	Stock    *int    `json:"stock"     validate:"required,integer,gte=0"`
	Email    string  `json:"email"     validate:"nullable,email"`
	Date     string  `json:"fecha"     validate:"nullable,date"`
	Status   string  `json:"estado"    validate:"required,in=pendiente,confirmado,entregado"`
}

func intPtr(n int) *int { return &n }

func valid() productInput {
	return productInput{
		Name:   "Turrón",
		Price:  12.50,
		Stock:  intPtr(5),
		Status: "pendiente",
	}
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(valid())
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})
	for _, field := range []string{"nombre", "precio", "stock", "estado"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required, got: %v", field, errs)
		}
	}
	if _, ok := errs["categoria"]; ok {
		t.Error("nullable categoria must not error when empty")
	}
}

func TestZeroValueBehindPointerIsPresent(t *testing.T) {
	in := valid()
	in.Stock = intPtr(0)
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		t.Errorf("stock 0 behind a pointer must be valid, got: %v", errs)
	}
}

func TestNegativeNumberFailsGte(t *testing.T) {
	in := valid()
	in.Stock = intPtr(-1)
	if _, ok := validate.Struct(in)["stock"]; !ok {
		t.Error("expected gte=0 to reject -1")
	}
}

func TestInRule(t *testing.T) {
	in := valid()
	in.Status = "enviado"
	if _, ok := validate.Struct(in)["estado"]; !ok {
		t.Error("expected in= to reject a value outside the enum")
	}

	for _, s := range []string{"pendiente", "confirmado", "entregado"} {
		in.Status = s
		if _, ok := validate.Struct(in)["estado"]; ok {
			t.Errorf("expected %q to be accepted", s)
		}
	}
}

func TestEmailRule(t *testing.T) {
	in := valid()
	in.Email = "no-es-un-email"
	if _, ok := validate.Struct(in)["email"]; !ok {
		t.Error("expected invalid email to fail")
	}

	in.Email = "admin@aldea.es"
	if _, ok := validate.Struct(in)["email"]; ok {
		t.Error("expected valid email to pass")
	}
}

func TestDateRule(t *testing.T) {
	in := valid()

	for _, good := range []string{"2025-12-24", "2025-12-24T18:00:00Z"} {
		in.Date = good
		if _, ok := validate.Struct(in)["fecha"]; ok {
			t.Errorf("expected %q to parse", good)
		}
	}

	in.Date = "24/12/2025"
	if _, ok := validate.Struct(in)["fecha"]; !ok {
		t.Error("expected non-ISO date to fail")
	}
}

func TestMaxLength(t *testing.T) {
	in := valid()
	long := make([]rune, 300)
	for i := range long {
		long[i] = 'a'
	}
	in.Name = string(long)
	if _, ok := validate.Struct(in)["nombre"]; !ok {
		t.Error("expected max=255 to reject a 300-char name")
	}
}

func TestParseDate(t *testing.T) {
	if _, err := validate.ParseDate("2025-12-24"); err != nil {
		t.Errorf("YYYY-MM-DD: %v", err)
	}
	if _, err := validate.ParseDate("2025-12-24T10:30:00+01:00"); err != nil {
		t.Errorf("RFC3339: %v", err)
	}
	if _, err := validate.ParseDate("navidad"); err == nil {
		t.Error("expected garbage to fail")
	}
}
