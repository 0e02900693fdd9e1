package model

import "errors"

type Side uint

const (
	Buy Side = iota + 1
	Sell
)

var sideList = []string{"buy", "sell"}

func (s Side) String() string {
	if s == 0 || int(s) > len(sideList) {
		return ""
	}
	return sideList[s-1]
}

func ToSide(s string) (Side, error) {
	for i, v := range sideList {
		if s == v {
			return Side(i + 1), nil
		}
	}
	return 0, errors.New("unknown trade side: " + s)
}

func IsValidSide(s string) bool {
	for _, v := range sideList {
		if s == v {
			return true
		}
	}
	return false
}

func SideList() []string {
	return sideList
}
