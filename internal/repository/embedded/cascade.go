package embedded

import (
	"github.com/dgraph-io/badger/v4"
	models "notebook/internal/domain/models/docsystem"
)

// deleteDocumentTx removes a document, its index entries and all of its blocks
func deleteDocumentTx(txn *badger.Txn, doc *models.Document) error {
	if err := releaseGuard(txn, key(prefixDocument, doc.ID)); err != nil {
		return err
	}
	for _, blockID := range prefixIDs(txn, key(indexBlocksByDoc, doc.ID)) {
		if err := txn.Delete(key(prefixBlock, blockID)); err != nil {
			return err
		}
		if err := txn.Delete(key(indexBlocksByDoc, doc.ID, blockID)); err != nil {
			return err
		}
	}

	keys := [][]byte{
		key(prefixDocument, doc.ID),
		key(indexDocsByOwner, doc.OwnerID, doc.ID),
		key(indexDocsByFolder, doc.OwnerID, parentOrRoot(doc.FolderID), doc.ID),
	}
	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// deleteFolderRecordTx removes one folder and its index entries; children
// and contained documents are the caller's concern
func deleteFolderRecordTx(txn *badger.Txn, folder *models.Folder) error {
	if err := releaseGuard(txn, key(prefixFolder, folder.ID)); err != nil {
		return err
	}
	keys := [][]byte{
		key(prefixFolder, folder.ID),
		key(indexFoldersByOwner, folder.OwnerID, folder.ID),
		key(indexFoldersByParent, folder.OwnerID, parentOrRoot(folder.ParentFolderID), folder.ID),
	}
	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// detachDocumentsTx moves every document of a folder to the root level
func detachDocumentsTx(txn *badger.Txn, ownerID, folderID int64) error {
	for _, docID := range prefixIDs(txn, key(indexDocsByFolder, ownerID, folderID)) {
		var doc models.Document
		if err := getRecord(txn, key(prefixDocument, docID), &doc); err != nil {
			return err
		}
		doc.FolderID = nil
		if err := putRecord(txn, key(prefixDocument, docID), &doc); err != nil {
			return err
		}
		if err := txn.Delete(key(indexDocsByFolder, ownerID, folderID, docID)); err != nil {
			return err
		}
		if err := txn.Set(key(indexDocsByFolder, ownerID, 0, docID), nil); err != nil {
			return err
		}
	}
	return nil
}
