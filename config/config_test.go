package config

import "testing"

func TestConfigInit(t *testing.T) {
	conf, err := NewConfig()
	if err != nil {
		t.Error(err)
	}

	t.Logf("%+v", conf)
}

func TestCurveSeed(t *testing.T) {
	conf, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}

	seed := conf.CurveSeed()
	if seed.MaxSupply != 100_000_000 {
		t.Errorf("unexpected max supply %v", seed.MaxSupply)
	}
	if seed.Exponent != 1.5 {
		t.Errorf("unexpected exponent %v", seed.Exponent)
	}
}
