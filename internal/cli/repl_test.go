package cli

import (
	"testing"
)

func TestParseCall(t *testing.T) {
	name, args, err := parseCall("GetStockPrice symbol=aapl")
	if err != nil {
		t.Fatalf("parseCall failed: %v", err)
	}
	if name != "GetStockPrice" {
		t.Errorf("Expected tool name GetStockPrice, got %s", name)
	}
	if args["symbol"] != "aapl" {
		t.Errorf("Expected symbol argument, got %v", args)
	}
}

func TestParseCall_CallPrefix(t *testing.T) {
	name, args, err := parseCall("call GetStockBars symbol=AAPL timespan=day limit=3")
	if err != nil {
		t.Fatalf("parseCall failed: %v", err)
	}
	if name != "GetStockBars" {
		t.Errorf("Expected tool name GetStockBars, got %s", name)
	}
	if args["timespan"] != "day" {
		t.Errorf("Expected timespan argument, got %v", args)
	}
	if args["limit"] != float64(3) {
		t.Errorf("Numeric values should convert to float64, got %T %v", args["limit"], args["limit"])
	}
}

func TestParseCall_Invalid(t *testing.T) {
	if _, _, err := parseCall("call"); err == nil {
		t.Error("Bare call should be rejected")
	}
	if _, _, err := parseCall("GetStockPrice symbol"); err == nil {
		t.Error("Argument without '=' should be rejected")
	}
	if _, _, err := parseCall("GetStockPrice =AAPL"); err == nil {
		t.Error("Empty argument key should be rejected")
	}
}

func TestConvertValue(t *testing.T) {
	if v := convertValue("3"); v != float64(3) {
		t.Errorf("convertValue(3) = %T %v", v, v)
	}
	if v := convertValue("true"); v != true {
		t.Errorf("convertValue(true) = %T %v", v, v)
	}
	if v := convertValue("AAPL"); v != "AAPL" {
		t.Errorf("convertValue(AAPL) = %T %v", v, v)
	}
}
