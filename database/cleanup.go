package database

import (
	"fmt"
	"log"
	"time"

	"mediaguard/utils"

	"github.com/spf13/viper"
)

// CleanupOldAuditEntries deletes archived audit rows older than the
// configured retention window. Run on a schedule.
func CleanupOldAuditEntries(store *AuditStore) {
	log.Println("Starting cleanup of old audit entries...")

	retentionDays := viper.GetInt("moderation.auditRetentionDays")
	if retentionDays <= 0 {
		retentionDays = 31
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	removed, err := store.PruneOlderThan(cutoff)
	if err != nil {
		log.Printf("Error pruning audit archive: %v", err)
		utils.Error("AuditCleanup", "Prune", err.Error())
		return
	}

	log.Printf("Successfully cleaned up %d old audit entries", removed)
	if removed > 0 {
		utils.Info("AuditCleanup", "Prune", fmt.Sprintf("Successfully cleaned up %d audit entries older than %d days", removed, retentionDays))
	}
}
