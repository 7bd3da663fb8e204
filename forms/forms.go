// Package forms holds the field-level validation rules for the booking
// and registration forms. Validation is synchronous and pure: rules
// run in declared order per field, a later failure overwrites the
// earlier message, and the result is a field→message map that is empty
// when the form may be submitted.
package forms

import (
	"regexp"
	"strings"

	"garagehub/models"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// VehicleTypes is the fixed set offered on the booking form.
var VehicleTypes = []string{"Ô tô", "Xe máy"}

// Errors maps a field name to its validation message. Absent = valid.
type Errors map[string]string

type BookingForm struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	VehicleType string `json:"vehicleType"`
	Issue       string `json:"issue"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Address     string `json:"address"`
}

// Validate checks the booking form against the shop type and the slots
// that were offered for the chosen date. The delivery address is
// required only for mobile shops.
func (f BookingForm) Validate(shopType string, offered []models.TimeSlot) Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Vui lòng nhập tên"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "Vui lòng nhập số điện thoại"
	} else if !phonePattern.MatchString(strings.TrimSpace(f.Phone)) {
		errs["phone"] = "Số điện thoại không hợp lệ"
	}
	if !validVehicleType(f.VehicleType) {
		errs["vehicleType"] = "Vui lòng chọn loại xe"
	}
	if !offeredAndAvailable(f.Time, offered) {
		errs["time"] = "Vui lòng chọn thời gian"
	}
	if shopType == models.ShopTypeMobile && strings.TrimSpace(f.Address) == "" {
		errs["address"] = "Vui lòng nhập địa chỉ"
	}

	return errs
}

func validVehicleType(v string) bool {
	for _, t := range VehicleTypes {
		if v == t {
			return true
		}
	}
	return false
}

func offeredAndAvailable(t string, offered []models.TimeSlot) bool {
	for _, s := range offered {
		if s.Time == t && s.Available {
			return true
		}
	}
	return false
}

type RegistrationForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f RegistrationForm) Validate() Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email là bắt buộc"
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Email không hợp lệ"
	}

	if strings.TrimSpace(f.Password) == "" {
		errs["password"] = "Mật khẩu là bắt buộc"
	} else if len(f.Password) < 6 {
		errs["password"] = "Mật khẩu phải có ít nhất 6 ký tự"
	}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Tên là bắt buộc"
	}

	return errs
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email là bắt buộc"
	}
	if strings.TrimSpace(f.Password) == "" {
		errs["password"] = "Mật khẩu là bắt buộc"
	}
	return errs
}
