package utils

import (
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// Auth provides authorization checks for the command surface.
type Auth struct {
	developers []string
}

// NewAuth creates a new Auth instance with the loaded configuration.
func NewAuth() *Auth {
	return &Auth{
		developers: viper.GetStringSlice("commands.auth.developers"),
	}
}

// IsDeveloper checks if a user is a configured developer.
func (a *Auth) IsDeveloper(userID string) bool {
	for _, devID := range a.developers {
		if userID == devID {
			return true
		}
	}
	return false
}

// IsAdmin checks if the interaction member holds the Administrator
// permission in the guild.
func (a *Auth) IsAdmin(member *discordgo.Member) bool {
	return member != nil && member.Permissions&discordgo.PermissionAdministrator != 0
}

// CheckPermission checks if the invoking user has the required permission
// level. Interactions outside a guild never pass an admin check.
func (a *Auth) CheckPermission(i *discordgo.InteractionCreate, requiredLevel string) bool {
	switch requiredLevel {
	case "developer":
		if i.Member == nil {
			return false
		}
		return a.IsDeveloper(i.Member.User.ID)
	case "admin":
		if i.Member == nil {
			return false
		}
		return a.IsDeveloper(i.Member.User.ID) || a.IsAdmin(i.Member)
	case "guest":
		return true
	default:
		return false
	}
}
