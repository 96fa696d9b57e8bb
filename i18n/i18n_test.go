package i18n

import (
	"context"
	"testing"
	"testing/fstest"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("it-IT,it;q=0.8") != "it" {
		t.Fatalf("expected it")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "it" {
		t.Fatalf("expected it fallback")
	}
	if DetectLanguage("") != "it" {
		t.Fatalf("expected default it")
	}
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]string{"en": "en", "en-US": "en", "it": "it", "IT": "it", "de": "it", "???": "it"} {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("it", "required") != "Obbligatorio" {
		t.Fatalf("expected Obbligatorio")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to it translation if exists
	if T("es", "required") != "Obbligatorio" {
		t.Fatalf("expected it fallback for es lang")
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	it, en := catalogs["it"], catalogs["en"]
	for k := range it {
		if _, ok := en[k]; !ok {
			t.Errorf("en catalog misses %q", k)
		}
	}
	for k := range en {
		if _, ok := it[k]; !ok {
			t.Errorf("it catalog misses %q", k)
		}
	}
}

func TestTfFormatsNumbers(t *testing.T) {
	if got := Tf("it", "%d immobili", 1234); got != "1.234 immobili" {
		t.Fatalf("got %q", got)
	}
	if got := Tf("en", "%d immobili", 1234); got != "1,234 immobili" {
		t.Fatalf("got %q", got)
	}
	if got := Tf("it", "flash.property_created", "SI0004"); got != "Immobile SI0004 aggiunto con successo!" {
		t.Fatalf("got %q", got)
	}
}

func TestLangContext(t *testing.T) {
	ctx := context.Background()
	if LangFrom(ctx) != "it" {
		t.Fatalf("expected default")
	}
	if LangFrom(WithLang(ctx, "en")) != "en" {
		t.Fatalf("expected en")
	}
}

func TestLoadRejectsBrokenCatalog(t *testing.T) {
	_, err := load(fstest.MapFS{"locales/it.yaml": {Data: []byte("a: [unclosed")}})
	if err == nil {
		t.Fatalf("expected parse error")
	}
	_, err = load(fstest.MapFS{"locales/en.yaml": {Data: []byte("a: b")}})
	if err == nil {
		t.Fatalf("expected missing default catalog error")
	}
}
